// Command arena plays headless self-play games, the search engine against
// greedy baselines, and writes one parquet result row per game. Used to
// A/B heuristic weights and search changes offline.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/snakeoil/strangle/arena"
	"github.com/snakeoil/strangle/search"
)

func main() {
	games := flag.Int("games", 100, "number of games to play")
	workers := flag.Int("workers", 4, "games played concurrently")
	size := flag.Int("size", 11, "board width and height")
	snakes := flag.Int("snakes", 4, "snakes per game including the engine")
	budget := flag.Duration("budget", 50*time.Millisecond, "per-move search budget")
	maxTurns := flag.Int("max-turns", 500, "turn cap, games hitting it score as draws")
	seed := flag.Int64("seed", 1, "base seed, game i plays with seed+i")
	mode := flag.String("opponent-mode", "paranoid", "opponent model: paranoid or expectation")
	out := flag.String("out", "arena_out", "directory for parquet results")
	flag.Parse()

	opponentMode := search.ParseOpponentMode(*mode)

	base := arena.DefaultOptions()
	base.Width = int32(*size)
	base.Height = int32(*size)
	base.Snakes = *snakes
	base.MaxTurns = *maxTurns
	base.Budget = *budget
	base.Engine.OpponentMode = opponentMode

	writer, err := arena.NewResultWriter(*out)
	if err != nil {
		log.Fatalf("open result writer: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mu sync.Mutex
	var wins, losses, draws int
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)
	for i := 0; i < *games; i++ {
		if ctx.Err() != nil {
			break
		}
		opts := base
		opts.Seed = *seed + int64(i)
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			result := arena.PlayGame(uuid.NewString(), opts)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case result.EngineWon:
				wins++
			case result.Winner == "":
				draws++
			default:
				losses++
			}
			log.Printf("game %s: winner=%q turns=%d mean_depth=%.1f (%d/%d done)",
				result.GameID, result.Winner, result.Turns, result.MeanDepth,
				wins+losses+draws, *games)
			return writer.WriteRow(arena.ResultRow{
				GameID:    result.GameID,
				Seed:      result.Seed,
				Width:     opts.Width,
				Height:    opts.Height,
				Snakes:    int32(opts.Snakes),
				Mode:      opponentMode.String(),
				Winner:    result.Winner,
				EngineWon: result.EngineWon,
				Turns:     int32(result.Turns),
				MeanDepth: float32(result.MeanDepth),
			})
		})
	}

	runErr := g.Wait()
	outPath, rows, err := writer.Finalize()
	if err != nil {
		log.Fatalf("finalize results: %v", err)
	}
	if runErr != nil {
		log.Fatalf("arena run: %v", runErr)
	}

	played := wins + losses + draws
	log.Printf("played %d games in %s: %d wins, %d losses, %d draws",
		played, time.Since(start).Round(time.Second), wins, losses, draws)
	if played > 0 {
		log.Printf("win rate %.1f%%", 100*float64(wins)/float64(played))
	}
	if outPath != "" {
		log.Printf("wrote %d rows to %s", rows, outPath)
	}
}
