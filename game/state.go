// Package game defines the board state model for the move engine.
//
// A GameState is immutable by convention: once constructed it is never
// written to again. Every simulated turn produces a fresh instance via
// Clone, which keeps tree search free of shared mutable state and makes
// parallel expansion of disjoint subtrees safe without locking.
package game

import "sort"

// Point is a board coordinate. (0,0) is bottom-left.
type Point struct {
	X int32
	Y int32
}

// MaxHealth is the health a snake is restored to when it eats.
const MaxHealth int32 = 100

type Snake struct {
	Id     string
	Health int32
	Body   []Point // head first, tail last
}

// Head returns the snake's head position.
func (s *Snake) Head() Point {
	return s.Body[0]
}

// Length returns the number of body segments.
func (s *Snake) Length() int {
	return len(s.Body)
}

// GameState is the complete per-turn board snapshot.
//
// Snakes holds only living snakes: elimination removes a snake from the
// slice, so presence in Snakes is the liveness test. YouId identifies the
// controlled snake; a state in which YouId is absent is still valid (the
// controlled snake has been eliminated but opponents play on).
type GameState struct {
	Width   int32
	Height  int32
	Snakes  []Snake
	Food    []Point
	Hazards []Point
	YouId   string
	Turn    int32
}

// Clone performs a deep copy of the game state.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}

	out := &GameState{
		Width:  s.Width,
		Height: s.Height,
		YouId:  s.YouId,
		Turn:   s.Turn,
	}

	if len(s.Food) > 0 {
		out.Food = make([]Point, len(s.Food))
		copy(out.Food, s.Food)
	}

	if len(s.Hazards) > 0 {
		out.Hazards = make([]Point, len(s.Hazards))
		copy(out.Hazards, s.Hazards)
	}

	if len(s.Snakes) > 0 {
		out.Snakes = make([]Snake, len(s.Snakes))
		for i := range s.Snakes {
			out.Snakes[i] = Snake{Id: s.Snakes[i].Id, Health: s.Snakes[i].Health}
			if len(s.Snakes[i].Body) > 0 {
				out.Snakes[i].Body = make([]Point, len(s.Snakes[i].Body))
				copy(out.Snakes[i].Body, s.Snakes[i].Body)
			}
		}
	}

	return out
}

// InBounds reports whether p lies on the board.
func (s *GameState) InBounds(p Point) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}

// Snake returns the living snake with the given id, or nil.
// The returned pointer aliases the state's slice and must not be used to
// mutate a state that is being searched.
func (s *GameState) Snake(id string) *Snake {
	for i := range s.Snakes {
		if s.Snakes[i].Id == id {
			return &s.Snakes[i]
		}
	}
	return nil
}

// You returns the controlled snake, or nil if it has been eliminated.
func (s *GameState) You() *Snake {
	return s.Snake(s.YouId)
}

// AliveIDs returns the ids of all living snakes in ascending order.
// The order is stable across calls on equal states, which keeps search
// expansion and tie-breaking reproducible.
func (s *GameState) AliveIDs() []string {
	ids := make([]string, 0, len(s.Snakes))
	for i := range s.Snakes {
		ids = append(ids, s.Snakes[i].Id)
	}
	sort.Strings(ids)
	return ids
}

// Occupant reports which living snake's body covers p, if any.
// Out-of-range coordinates are simply unoccupied.
func (s *GameState) Occupant(p Point) (string, bool) {
	for i := range s.Snakes {
		for _, b := range s.Snakes[i].Body {
			if b == p {
				return s.Snakes[i].Id, true
			}
		}
	}
	return "", false
}

// HasFood reports whether p holds food.
func (s *GameState) HasFood(p Point) bool {
	for _, f := range s.Food {
		if f == p {
			return true
		}
	}
	return false
}

// HasHazard reports whether p lies in a hazard.
func (s *GameState) HasHazard(p Point) bool {
	for _, h := range s.Hazards {
		if h == p {
			return true
		}
	}
	return false
}
