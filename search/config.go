// Package search implements the move-selection engine: a time-bounded,
// iterative-deepening adversarial search over the simultaneous-turn
// simulator, scored by a weighted heuristic evaluator.
package search

import (
	"time"

	"github.com/snakeoil/strangle/rules"
)

// OpponentMode selects how opponents are modeled during search. It is a
// tagged choice fixed once at startup, not an abstraction dispatched per
// node: the two modes differ only at the joint-opponent-move combiner.
type OpponentMode int

const (
	// Paranoid assumes all opponents jointly pick the single worst-case
	// action against the controlled snake.
	Paranoid OpponentMode = iota
	// Expectation averages over all legal joint opponent actions.
	Expectation
)

// ParseOpponentMode maps the config surface strings to a mode.
// Unknown values fall back to paranoid.
func ParseOpponentMode(s string) OpponentMode {
	if s == "expectation" {
		return Expectation
	}
	return Paranoid
}

func (m OpponentMode) String() string {
	if m == Expectation {
		return "expectation"
	}
	return "paranoid"
}

// Weights are the tunable evaluator term weights. Tuning them changes
// playing style, not engine architecture.
type Weights struct {
	Death    float64 // applied when the controlled snake is dead
	Victory  float64 // applied when all opponents are dead
	TurnBonus float64 // per-turn survival bonus; prefers dying later

	Space       float64 // per cell of flood-fill space advantage
	SpaceCutoff int     // flood-fill distance budget

	Health              float64 // per point of remaining health
	Starvation          float64 // super-linear penalty factor below the threshold
	StarvationThreshold int32

	Length float64 // per segment of length advantage over the longest rival

	ThreatDistance    float64 // per step of head distance to the nearest equal-or-longer rival
	ThreatDistanceCap int32   // clamp on that distance; farther threats score alike

	Food          float64 // inverse-distance food attraction when hungry
	FoodThreshold int32   // health below which the food term activates
}

// DefaultWeights is a balanced baseline tuned in arena self-play.
func DefaultWeights() Weights {
	return Weights{
		Death:               -1_000_000,
		Victory:             100_000,
		TurnBonus:           100,
		Space:               12,
		SpaceCutoff:         12,
		Health:              1.5,
		Starvation:          0.4,
		StarvationThreshold: 25,
		Length:              30,
		ThreatDistance:      60,
		ThreatDistanceCap:   3,
		Food:                120,
		FoodThreshold:       40,
	}
}

// Config is the engine configuration, read once at process start.
type Config struct {
	// SafetyMargin is subtracted from the per-turn budget; the search
	// returns at least this long before the real deadline.
	SafetyMargin time.Duration
	// MaxDepth caps iterative deepening. Mostly relevant for tests and
	// tiny boards where the deadline never triggers.
	MaxDepth int
	// CheckEvery is the node-expansion interval between deadline checks.
	// Checking every node costs more than it saves.
	CheckEvery int
	// CacheSize bounds the transposition cache entry count; 0 disables
	// the cache entirely. The cache is per-invocation, never shared.
	CacheSize int

	OpponentMode OpponentMode
	Rules        rules.Settings
	Weights      Weights
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		SafetyMargin: 50 * time.Millisecond,
		MaxDepth:     24,
		CheckEvery:   256,
		CacheSize:    1 << 16,
		OpponentMode: Paranoid,
		Rules:        rules.DefaultSettings,
		Weights:      DefaultWeights(),
	}
}
