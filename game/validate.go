package game

import "fmt"

// Validate checks the structural invariants the engine assumes: positive
// board dimensions, unique snake ids, non-empty in-bounds bodies, and
// health within [0, MaxHealth]. Adapters must call this on states built
// from external input; the engine does not re-check or repair them.
func Validate(s *GameState) error {
	if s == nil {
		return fmt.Errorf("nil state")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid board size %dx%d", s.Width, s.Height)
	}

	seen := make(map[string]bool, len(s.Snakes))
	for i := range s.Snakes {
		sn := &s.Snakes[i]
		if sn.Id == "" {
			return fmt.Errorf("snake %d: empty id", i)
		}
		if seen[sn.Id] {
			return fmt.Errorf("duplicate snake id %q", sn.Id)
		}
		seen[sn.Id] = true

		if len(sn.Body) == 0 {
			return fmt.Errorf("snake %q: empty body", sn.Id)
		}
		for _, p := range sn.Body {
			if !s.InBounds(p) {
				return fmt.Errorf("snake %q: body segment (%d,%d) out of bounds", sn.Id, p.X, p.Y)
			}
		}
		if sn.Health < 0 || sn.Health > MaxHealth {
			return fmt.Errorf("snake %q: health %d out of range", sn.Id, sn.Health)
		}
	}

	for _, f := range s.Food {
		if !s.InBounds(f) {
			return fmt.Errorf("food (%d,%d) out of bounds", f.X, f.Y)
		}
	}
	for _, h := range s.Hazards {
		if !s.InBounds(h) {
			return fmt.Errorf("hazard (%d,%d) out of bounds", h.X, h.Y)
		}
	}

	return nil
}
