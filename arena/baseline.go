package arena

import (
	"github.com/snakeoil/strangle/game"
	"github.com/snakeoil/strangle/rules"
)

// GreedyMove is the baseline opponent policy: among the candidate moves,
// prefer ones that don't step into a wall or a body, and of those, the
// one closest to the nearest food. Ties resolve by the fixed move
// priority order, so baselines are fully deterministic.
//
// It is intentionally myopic: it exists to measure the engine against,
// and to give the expectation opponent model something realistic.
func GreedyMove(state *game.GameState, id string) int {
	snake := state.Snake(id)
	candidates := rules.LegalMoves(state, id)
	if snake == nil || len(candidates) == 0 {
		return rules.MoveUp
	}

	grid := game.Occupancy(state)

	bestMove := candidates[0]
	bestSafe := false
	bestDist := int32(1 << 30)
	for _, m := range candidates {
		next := rules.Apply(snake.Body[0], m)
		safe := !grid.Blocked(next)
		dist := nearestFoodDistance(state, next)

		switch {
		case safe && !bestSafe:
			bestMove, bestSafe, bestDist = m, true, dist
		case safe == bestSafe && dist < bestDist:
			bestMove, bestDist = m, dist
		}
	}
	return bestMove
}

func nearestFoodDistance(state *game.GameState, from game.Point) int32 {
	best := int32(1 << 30)
	for _, f := range state.Food {
		d := abs32(f.X-from.X) + abs32(f.Y-from.Y)
		if d < best {
			best = d
		}
	}
	return best
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
