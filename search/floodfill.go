package search

import "github.com/snakeoil/strangle/game"

// FloodFill breadth-first explores free cells reachable from the four
// neighbours of start, up to maxDist steps away. It returns the number of
// reachable free cells and the distance to the nearest reachable food
// (-1 when none is reachable within the budget).
//
// start itself is normally a snake head and therefore blocked; it is not
// counted. The count is monotone in the free-cell set: unblocking cells
// can only grow it.
func FloodFill(g *game.Grid, start game.Point, maxDist int) (cells int, foodDist int) {
	foodDist = -1
	if maxDist <= 0 {
		return 0, -1
	}

	visited := make([]bool, int(g.Width)*int(g.Height))
	type cell struct {
		p    game.Point
		dist int
	}
	queue := make([]cell, 0, 64)

	push := func(p game.Point, dist int) {
		if g.Blocked(p) {
			return
		}
		idx := int(p.Y)*int(g.Width) + int(p.X)
		if visited[idx] {
			return
		}
		visited[idx] = true
		queue = append(queue, cell{p: p, dist: dist})
	}

	push(game.Point{X: start.X, Y: start.Y + 1}, 1)
	push(game.Point{X: start.X, Y: start.Y - 1}, 1)
	push(game.Point{X: start.X - 1, Y: start.Y}, 1)
	push(game.Point{X: start.X + 1, Y: start.Y}, 1)

	for head := 0; head < len(queue); head++ {
		c := queue[head]
		cells++
		if foodDist < 0 && g.Food(c.p) {
			foodDist = c.dist
		}
		if c.dist >= maxDist {
			continue
		}
		push(game.Point{X: c.p.X, Y: c.p.Y + 1}, c.dist+1)
		push(game.Point{X: c.p.X, Y: c.p.Y - 1}, c.dist+1)
		push(game.Point{X: c.p.X - 1, Y: c.p.Y}, c.dist+1)
		push(game.Point{X: c.p.X + 1, Y: c.p.Y}, c.dist+1)
	}

	return cells, foodDist
}
