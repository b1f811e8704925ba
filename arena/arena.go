// Package arena runs headless self-play games: the search engine against
// greedy baseline snakes, used to measure heuristic and search changes
// before they ship.
package arena

import (
	"math/rand"
	"time"

	"github.com/snakeoil/strangle/game"
	"github.com/snakeoil/strangle/rules"
	"github.com/snakeoil/strangle/search"
)

// EngineID is the snake id driven by the search engine in every arena
// game. All other snakes are baselines.
const EngineID = "engine"

// Options configures one arena game.
type Options struct {
	Width    int32
	Height   int32
	Snakes   int // total snakes including the engine, 2 to 4
	MaxTurns int // games still running here are scored as draws
	Budget   time.Duration
	Seed     int64
	Engine   search.Config
	Rules    rules.Settings
	Food     game.FoodSettings
}

// DefaultOptions is a standard four-snake board with a quick per-move
// budget, tuned for throughput rather than playing strength.
func DefaultOptions() Options {
	return Options{
		Width:    11,
		Height:   11,
		Snakes:   4,
		MaxTurns: 500,
		Budget:   50 * time.Millisecond,
		Engine:   search.DefaultConfig(),
		Rules:    rules.DefaultSettings,
		Food:     game.DefaultFoodSettings,
	}
}

// GameResult summarizes one finished game.
type GameResult struct {
	GameID    string
	Seed      int64
	Winner    string // empty on a draw
	EngineWon bool
	Turns     int
	MeanDepth float64 // mean completed search depth across engine moves
}

// PlayGame runs one game to completion and returns its result.
// Deterministic for a fixed seed and options, as long as the per-move
// budget never cuts different depths between runs.
func PlayGame(gameID string, opts Options) GameResult {
	rng := rand.New(rand.NewSource(opts.Seed))
	state := startState(opts, rng)

	var depthSum, engineMoves int
	for !rules.IsGameOver(state) && state.Turn < int32(opts.MaxTurns) {
		moves := make(map[string]int, len(state.Snakes))
		for i := range state.Snakes {
			id := state.Snakes[i].Id
			if id == EngineID {
				res := search.Search(state, opts.Engine, opts.Budget)
				if res.NoMove {
					continue
				}
				moves[id] = res.Move
				depthSum += res.Depth
				engineMoves++
				continue
			}
			moves[id] = GreedyMove(state, id)
		}
		state = rules.NextState(state, moves, opts.Rules)
		game.SpawnFood(state, rng, opts.Food, uint64(opts.Seed))
	}

	result := GameResult{
		GameID: gameID,
		Seed:   opts.Seed,
		Turns:  int(state.Turn),
	}
	if len(state.Snakes) == 1 {
		result.Winner = state.Snakes[0].Id
		result.EngineWon = result.Winner == EngineID
	}
	if engineMoves > 0 {
		result.MeanDepth = float64(depthSum) / float64(engineMoves)
	}
	return result
}

// startState builds the opening position: snakes stacked three deep on
// the near-corner cells, board topped up with one food per snake.
func startState(opts Options, rng *rand.Rand) *game.GameState {
	corners := []game.Point{
		{X: 1, Y: 1},
		{X: opts.Width - 2, Y: opts.Height - 2},
		{X: 1, Y: opts.Height - 2},
		{X: opts.Width - 2, Y: 1},
	}

	state := &game.GameState{
		Width:  opts.Width,
		Height: opts.Height,
		YouId:  EngineID,
	}
	for i := 0; i < opts.Snakes && i < len(corners); i++ {
		id := EngineID
		if i > 0 {
			id = "baseline-" + string(rune('a'+i-1))
		}
		start := corners[i]
		state.Snakes = append(state.Snakes, game.Snake{
			Id:     id,
			Health: game.MaxHealth,
			Body:   []game.Point{start, start, start},
		})
	}

	food := opts.Food
	if food.MinimumFood < opts.Snakes {
		food.MinimumFood = opts.Snakes
	}
	food.FoodSpawnChance = 0
	game.SpawnFood(state, rng, food, uint64(opts.Seed))
	return state
}
