package game

// Grid is a flat, dense occupancy index over one state: cell index is
// y*Width + x. It replaces per-cell object lookups on the hot evaluation
// path (flood fill, move ordering) with a single slice scan.
type Grid struct {
	Width  int32
	Height int32
	cells  []uint8
}

const (
	cellBody   uint8 = 1 << 0
	cellFood   uint8 = 1 << 1
	cellHazard uint8 = 1 << 2
)

// Occupancy builds the flat grid for a state.
func Occupancy(s *GameState) *Grid {
	g := &Grid{
		Width:  s.Width,
		Height: s.Height,
		cells:  make([]uint8, int(s.Width)*int(s.Height)),
	}
	for i := range s.Snakes {
		for _, p := range s.Snakes[i].Body {
			if s.InBounds(p) {
				g.cells[g.index(p)] |= cellBody
			}
		}
	}
	for _, f := range s.Food {
		if s.InBounds(f) {
			g.cells[g.index(f)] |= cellFood
		}
	}
	for _, h := range s.Hazards {
		if s.InBounds(h) {
			g.cells[g.index(h)] |= cellHazard
		}
	}
	return g
}

func (g *Grid) index(p Point) int {
	return int(p.Y)*int(g.Width) + int(p.X)
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Blocked reports whether p is off the board or covered by a snake body.
func (g *Grid) Blocked(p Point) bool {
	if !g.InBounds(p) {
		return true
	}
	return g.cells[g.index(p)]&cellBody != 0
}

// Food reports whether p holds food. Out-of-range is false.
func (g *Grid) Food(p Point) bool {
	return g.InBounds(p) && g.cells[g.index(p)]&cellFood != 0
}

// Hazard reports whether p lies in a hazard. Out-of-range is false.
func (g *Grid) Hazard(p Point) bool {
	return g.InBounds(p) && g.cells[g.index(p)]&cellHazard != 0
}
