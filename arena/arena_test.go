package arena

import (
	"os"
	"testing"
	"time"

	"github.com/snakeoil/strangle/game"
	"github.com/snakeoil/strangle/rules"
)

func TestGreedyMoveAvoidsWalls(t *testing.T) {
	state := &game.GameState{
		Width:  5,
		Height: 5,
		Snakes: []game.Snake{
			{Id: "a", Health: 100, Body: []game.Point{{X: 0, Y: 0}, {X: 0, Y: 1}}},
		},
	}

	// Up is the neck, down and left leave the board. Only right is safe.
	if got := GreedyMove(state, "a"); got != rules.MoveRight {
		t.Fatalf("expected right, got %s", rules.MoveString(got))
	}
}

func TestGreedyMoveSeeksFood(t *testing.T) {
	state := &game.GameState{
		Width:  5,
		Height: 5,
		Snakes: []game.Snake{
			{Id: "a", Health: 100, Body: []game.Point{{X: 2, Y: 2}, {X: 2, Y: 3}}},
		},
		Food: []game.Point{{X: 4, Y: 2}},
	}

	if got := GreedyMove(state, "a"); got != rules.MoveRight {
		t.Fatalf("expected right toward food, got %s", rules.MoveString(got))
	}
}

func TestGreedyMoveTieBreaksByPriority(t *testing.T) {
	// No food, every open move scores alike, so the first candidate in
	// fixed priority order wins.
	state := &game.GameState{
		Width:  5,
		Height: 5,
		Snakes: []game.Snake{
			{Id: "a", Health: 100, Body: []game.Point{{X: 2, Y: 2}, {X: 3, Y: 2}}},
		},
	}

	if got := GreedyMove(state, "a"); got != rules.MoveUp {
		t.Fatalf("expected up, got %s", rules.MoveString(got))
	}
}

func quickOptions() Options {
	opts := DefaultOptions()
	opts.Width = 7
	opts.Height = 7
	opts.Snakes = 2
	opts.MaxTurns = 60
	opts.Budget = 200 * time.Millisecond
	opts.Seed = 7
	opts.Engine.SafetyMargin = 0
	opts.Engine.MaxDepth = 2
	return opts
}

func TestPlayGameTerminates(t *testing.T) {
	opts := quickOptions()
	result := PlayGame("g1", opts)

	if result.GameID != "g1" {
		t.Fatalf("game id not carried through: %q", result.GameID)
	}
	if result.Turns < 1 || result.Turns > opts.MaxTurns {
		t.Fatalf("implausible turn count %d", result.Turns)
	}
	switch result.Winner {
	case "", EngineID, "baseline-a":
	default:
		t.Fatalf("unknown winner %q", result.Winner)
	}
	if result.EngineWon && result.Winner != EngineID {
		t.Fatalf("engine marked as winner but winner is %q", result.Winner)
	}
}

func TestPlayGameDeterministicForSeed(t *testing.T) {
	opts := quickOptions()
	first := PlayGame("g1", opts)
	second := PlayGame("g2", opts)

	if first.Winner != second.Winner || first.Turns != second.Turns {
		t.Fatalf("same seed diverged: %q/%d vs %q/%d",
			first.Winner, first.Turns, second.Winner, second.Turns)
	}
}

func TestResultWriterFinalize(t *testing.T) {
	dir := t.TempDir()
	w, err := NewResultWriter(dir)
	if err != nil {
		t.Fatal(err)
	}

	err = w.WriteRow(ResultRow{GameID: "g1", Winner: EngineID, EngineWon: true, Turns: 42})
	if err != nil {
		t.Fatal(err)
	}

	outPath, rows, err := w.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row, got %d", rows)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Fatalf("finalized file missing: %v", err)
	}
}

func TestResultWriterEmptyLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	w, err := NewResultWriter(dir)
	if err != nil {
		t.Fatal(err)
	}

	outPath, rows, err := w.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if outPath != "" || rows != 0 {
		t.Fatalf("empty writer produced output: %q, %d rows", outPath, rows)
	}
}
