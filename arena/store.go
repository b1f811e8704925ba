package arena

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// ResultRow is the parquet record written per finished game.
type ResultRow struct {
	GameID    string  `parquet:"game_id,dict"`
	Seed      int64   `parquet:"seed"`
	Width     int32   `parquet:"width"`
	Height    int32   `parquet:"height"`
	Snakes    int32   `parquet:"snakes"`
	Mode      string  `parquet:"mode,dict"`
	Winner    string  `parquet:"winner,dict"`
	EngineWon bool    `parquet:"engine_won"`
	Turns     int32   `parquet:"turns"`
	MeanDepth float32 `parquet:"mean_depth"`
}

// ResultWriter accumulates result rows into a parquet file. Rows go to a
// tmp/ path first and only land in outDir on Finalize, so readers never
// see a partially written batch.
type ResultWriter struct {
	outDir  string
	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[ResultRow]

	rows int
}

func NewResultWriter(outDir string) (*ResultWriter, error) {
	if outDir == "" {
		return nil, fmt.Errorf("outDir is required")
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		absOut = outDir
	}
	tmpDir := filepath.Join(absOut, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("arena_%d.parquet", time.Now().UnixNano())
	tmpPath := filepath.Join(tmpDir, name)
	outPath := filepath.Join(absOut, name)

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tmp parquet: %w", err)
	}

	w := parquet.NewGenericWriter[ResultRow](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", "arena_result_v1")

	return &ResultWriter{
		outDir:  absOut,
		tmpPath: tmpPath,
		outPath: outPath,
		file:    f,
		writer:  w,
	}, nil
}

func (w *ResultWriter) WriteRow(row ResultRow) error {
	if w.writer == nil || w.file == nil {
		return fmt.Errorf("result writer is closed")
	}
	if _, err := w.writer.Write([]ResultRow{row}); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Finalize closes the parquet writer and moves the file from tmp/ to
// outDir. If no rows were written, the tmp file is removed and outPath
// comes back empty.
func (w *ResultWriter) Finalize() (outPath string, rows int, err error) {
	if w.writer == nil && w.file == nil {
		return "", 0, nil
	}

	rows = w.rows
	outPath = w.outPath

	var closeErr error
	if w.writer != nil {
		closeErr = w.writer.Close()
		w.writer = nil
	}
	var fileErr error
	if w.file != nil {
		_ = w.file.Sync()
		fileErr = w.file.Close()
		w.file = nil
	}
	if closeErr != nil {
		return "", 0, fmt.Errorf("close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		return "", 0, fmt.Errorf("close parquet file: %w", fileErr)
	}

	if rows == 0 {
		_ = os.Remove(w.tmpPath)
		return "", 0, nil
	}
	if err := os.Rename(w.tmpPath, w.outPath); err != nil {
		return "", 0, fmt.Errorf("rename parquet: %w", err)
	}
	return outPath, rows, nil
}
