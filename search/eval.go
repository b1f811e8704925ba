package search

import (
	"github.com/snakeoil/strangle/game"
)

// Evaluate scores a state from the controlled snake's perspective; higher
// is better. It is a pure function of the state and weights: no search,
// no randomness, no caching.
//
// A state with the controlled snake dead still evaluates cleanly (to the
// death constant plus the turn bonus, so later deaths score higher), as
// does a state where opponents must still be simulated.
func Evaluate(state *game.GameState, w Weights) float64 {
	survival := w.TurnBonus * float64(state.Turn)

	you := state.You()
	if you == nil {
		return w.Death + survival
	}

	score := survival
	if len(state.Snakes) == 1 {
		score += w.Victory
	}

	grid := game.Occupancy(state)
	head := you.Body[0]
	mySpace, myFoodDist := FloodFill(grid, head, w.SpaceCutoff)

	// Space control relative to the roomiest rival.
	bestOppSpace := 0
	longestOpp := 0
	nearestThreat := int32(-1)
	for i := range state.Snakes {
		opp := &state.Snakes[i]
		if opp.Id == state.YouId {
			continue
		}
		oppSpace, _ := FloodFill(grid, opp.Body[0], w.SpaceCutoff)
		if oppSpace > bestOppSpace {
			bestOppSpace = oppSpace
		}
		if len(opp.Body) > longestOpp {
			longestOpp = len(opp.Body)
		}
		if len(opp.Body) >= len(you.Body) {
			d := manhattan(head, opp.Body[0])
			if nearestThreat < 0 || d < nearestThreat {
				nearestThreat = d
			}
		}
	}
	score += w.Space * float64(mySpace-bestOppSpace)

	// Keep clear of rivals that win or trade a head-to-head. Clamped:
	// past a few steps away the threat is not acute.
	if nearestThreat >= 0 {
		d := nearestThreat
		if d > w.ThreatDistanceCap {
			d = w.ThreatDistanceCap
		}
		score += w.ThreatDistance * float64(d)
	}

	// Health, with a super-linear squeeze as starvation approaches.
	score += w.Health * float64(you.Health)
	if you.Health < w.StarvationThreshold {
		deficit := float64(w.StarvationThreshold - you.Health)
		score -= w.Starvation * deficit * deficit
	}

	score += w.Length * float64(len(you.Body)-longestOpp)

	// Food attraction only matters when hungry; a well-fed snake should
	// spend its score budget on space and position instead.
	if you.Health < w.FoodThreshold && myFoodDist > 0 {
		score += w.Food / float64(myFoodDist)
	}

	return score
}

func manhattan(a, b game.Point) int32 {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
