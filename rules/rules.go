// Package rules implements move generation and the simultaneous-turn
// state transition.
//
// The transition applies its elimination steps in a fixed order so that
// identical inputs always produce identical next states. It never fails:
// contradictory inputs (a doomed move, a dead controlled snake) still
// yield a valid next state, and scoring the outcome is the evaluator's
// job, not the simulator's.
package rules

import (
	"github.com/snakeoil/strangle/game"
)

const (
	MoveUp    = 0
	MoveDown  = 1
	MoveLeft  = 2
	MoveRight = 3
)

// AllMoves lists the four moves in fixed priority order. Search code
// iterates in this order so deterministic tie-breaking falls out for free.
var AllMoves = [4]int{MoveUp, MoveDown, MoveLeft, MoveRight}

// MoveString returns the wire name of a move.
func MoveString(move int) string {
	switch move {
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	default:
		return "up"
	}
}

// Apply returns the coordinate reached by making move from p.
// Moves are absolute directions, never relative to prior travel.
func Apply(p game.Point, move int) game.Point {
	switch move {
	case MoveUp:
		return game.Point{X: p.X, Y: p.Y + 1}
	case MoveDown:
		return game.Point{X: p.X, Y: p.Y - 1}
	case MoveLeft:
		return game.Point{X: p.X - 1, Y: p.Y}
	case MoveRight:
		return game.Point{X: p.X + 1, Y: p.Y}
	default:
		return game.Point{X: p.X, Y: p.Y + 1}
	}
}

// Settings holds the ruleset knobs the transition depends on.
type Settings struct {
	// HazardDamagePerTurn is extra health drained when a snake's head ends
	// the turn inside a hazard. Hazards never eliminate directly; only the
	// resulting health reaching zero does.
	HazardDamagePerTurn int32
}

// DefaultSettings matches the standard hazard ruleset.
var DefaultSettings = Settings{HazardDamagePerTurn: 14}

// LegalMoves returns the candidate moves for a living snake: everything
// except reversing into its own neck. Moves into walls or bodies are
// deliberately kept: when all options are lethal the search still has to
// pick a least-bad one, so lethality is resolved by simulation and
// scoring, not filtered here. A dead or absent snake has no moves.
func LegalMoves(state *game.GameState, id string) []int {
	snake := state.Snake(id)
	if snake == nil || snake.Health <= 0 {
		return nil
	}

	head := snake.Body[0]
	moves := make([]int, 0, 4)
	for _, m := range AllMoves {
		next := Apply(head, m)
		if len(snake.Body) > 1 && next == snake.Body[1] {
			continue
		}
		moves = append(moves, m)
	}
	return moves
}

// NextState advances the state one turn with one move per living snake.
// Snakes missing from moves default to up; during adversarial search only
// the controlled snake's true intention is known, so opponents must always
// have some move. The input state is never mutated.
//
// Steps, in order: move and grow/trim bodies, hunger, hazard drain,
// out-of-bounds and starvation eliminations, body collisions (vacating
// tails exempt), head-to-head resolution by length, food removal, turn
// increment. Elimination is final within the turn: an eliminated snake is
// dropped from the snake list and from every state derived afterwards.
func NextState(state *game.GameState, moves map[string]int, settings Settings) *game.GameState {
	next := state.Clone()
	next.Turn++

	// Step 1: move every snake. New head is prepended; the tail is dropped
	// unless the snake eats this turn, in which case it keeps full length.
	ate := make(map[string]bool, len(next.Snakes))
	for i := range next.Snakes {
		s := &next.Snakes[i]
		move, ok := moves[s.Id]
		if !ok {
			move = MoveUp
		}

		newHead := Apply(s.Body[0], move)
		eating := state.HasFood(newHead)
		ate[s.Id] = eating

		body := make([]game.Point, 0, len(s.Body)+1)
		body = append(body, newHead)
		body = append(body, s.Body...)
		if !eating {
			body = body[:len(body)-1]
		}
		s.Body = body
	}

	// Steps 2-4: hunger, hazard drain, and health/bounds eliminations.
	// Eating overrides both drains and restores full health.
	for i := range next.Snakes {
		s := &next.Snakes[i]
		if ate[s.Id] {
			s.Health = game.MaxHealth
			continue
		}
		s.Health--
		if next.HasHazard(s.Body[0]) {
			s.Health -= settings.HazardDamagePerTurn
		}
		if s.Health < 0 {
			s.Health = 0
		}
	}

	drained := make(map[string]bool, len(next.Snakes))
	for i := range next.Snakes {
		s := &next.Snakes[i]
		if !next.InBounds(s.Body[0]) || s.Health <= 0 {
			drained[s.Id] = true
		}
	}

	// Steps 5 and 6 are simultaneous: every collision is judged against
	// the post-move snapshot, excluding only snakes already gone from
	// steps 2-4. A snake eliminated by one collision still eliminates
	// others in the same turn, so results accumulate in a separate set.
	dead := make(map[string]bool, len(next.Snakes))
	for id := range drained {
		dead[id] = true
	}

	// Step 5: body collisions against post-move bodies. A tail vacated
	// this turn is already gone from the post-move body, so chasing a
	// non-growing tail survives; a growing snake's tail stays and kills.
	for i := range next.Snakes {
		s := &next.Snakes[i]
		if drained[s.Id] {
			continue
		}
		head := s.Body[0]
		for j := range next.Snakes {
			other := &next.Snakes[j]
			if drained[other.Id] {
				continue
			}
			for k, p := range other.Body {
				if k == 0 {
					// Heads are resolved in step 6.
					continue
				}
				if p == head {
					dead[s.Id] = true
				}
			}
		}
	}

	// Step 6: head-to-head collisions. Strictly shorter snakes lose;
	// equal lengths eliminate everyone involved.
	for i := range next.Snakes {
		s1 := &next.Snakes[i]
		if drained[s1.Id] {
			continue
		}
		for j := i + 1; j < len(next.Snakes); j++ {
			s2 := &next.Snakes[j]
			if drained[s2.Id] {
				continue
			}
			if s1.Body[0] != s2.Body[0] {
				continue
			}
			switch {
			case len(s1.Body) > len(s2.Body):
				dead[s2.Id] = true
			case len(s2.Body) > len(s1.Body):
				dead[s1.Id] = true
			default:
				dead[s1.Id] = true
				dead[s2.Id] = true
			}
		}
	}

	survivors := make([]game.Snake, 0, len(next.Snakes))
	for i := range next.Snakes {
		if !dead[next.Snakes[i].Id] {
			survivors = append(survivors, next.Snakes[i])
		}
	}
	next.Snakes = survivors

	// Step 7: remove food consumed this turn. Food eaten by a snake that
	// died in the same turn is still gone.
	next.Food = consumeFood(state, moves, next.Food)

	return next
}

// consumeFood drops every food coordinate some snake's new head landed on.
func consumeFood(prev *game.GameState, moves map[string]int, food []game.Point) []game.Point {
	if len(food) == 0 {
		return food
	}
	eatenAt := make(map[game.Point]bool, len(prev.Snakes))
	for i := range prev.Snakes {
		s := &prev.Snakes[i]
		move, ok := moves[s.Id]
		if !ok {
			move = MoveUp
		}
		newHead := Apply(s.Body[0], move)
		if prev.HasFood(newHead) {
			eatenAt[newHead] = true
		}
	}
	remaining := make([]game.Point, 0, len(food))
	for _, f := range food {
		if !eatenAt[f] {
			remaining = append(remaining, f)
		}
	}
	return remaining
}

// IsGameOver reports whether at most one snake remains.
func IsGameOver(state *game.GameState) bool {
	return len(state.Snakes) <= 1
}
