package search

import (
	"testing"

	"github.com/snakeoil/strangle/game"
)

func snakeColumn(id string, health int32, head game.Point, length int) game.Snake {
	body := make([]game.Point, 0, length)
	for i := 0; i < length; i++ {
		body = append(body, game.Point{X: head.X, Y: head.Y - int32(i)})
	}
	return game.Snake{Id: id, Health: health, Body: body}
}

func TestFloodFillCountsFreeCells(t *testing.T) {
	state := &game.GameState{
		Width:  5,
		Height: 5,
		YouId:  "me",
		Snakes: []game.Snake{snakeColumn("me", 50, game.Point{X: 2, Y: 2}, 3)},
	}
	g := game.Occupancy(state)

	cells, _ := FloodFill(g, game.Point{X: 2, Y: 2}, 20)
	if cells != 22 {
		t.Fatalf("got %d reachable cells, want 22 (25 minus 3 body segments)", cells)
	}
}

func TestFloodFillRespectsBudget(t *testing.T) {
	state := &game.GameState{
		Width:  9,
		Height: 9,
		YouId:  "me",
		Snakes: []game.Snake{{Id: "me", Health: 50, Body: []game.Point{{X: 4, Y: 4}}}},
	}
	g := game.Occupancy(state)

	near, _ := FloodFill(g, game.Point{X: 4, Y: 4}, 1)
	if near != 4 {
		t.Fatalf("budget 1 should reach exactly the 4 neighbours, got %d", near)
	}

	wider, _ := FloodFill(g, game.Point{X: 4, Y: 4}, 3)
	if wider <= near {
		t.Fatalf("larger budget should reach more cells: %d vs %d", wider, near)
	}
}

func TestFloodFillMonotoneInFreeCells(t *testing.T) {
	// Shrinking the snake frees cells; the reachable count must never
	// decrease when the free-cell set grows.
	for length := 8; length > 1; length-- {
		longer := &game.GameState{
			Width:  8,
			Height: 8,
			YouId:  "me",
			Snakes: []game.Snake{snakeColumn("me", 50, game.Point{X: 0, Y: 7}, length)},
		}
		shorter := longer.Clone()
		shorter.Snakes[0].Body = shorter.Snakes[0].Body[:length-1]

		head := game.Point{X: 0, Y: 7}
		withLonger, _ := FloodFill(game.Occupancy(longer), head, 30)
		withShorter, _ := FloodFill(game.Occupancy(shorter), head, 30)
		if withShorter < withLonger {
			t.Fatalf("length %d: freeing a cell shrank reachability %d -> %d",
				length, withLonger, withShorter)
		}
	}
}

func TestFloodFillFoodDistance(t *testing.T) {
	state := &game.GameState{
		Width:  7,
		Height: 7,
		YouId:  "me",
		Snakes: []game.Snake{snakeColumn("me", 50, game.Point{X: 3, Y: 3}, 2)},
		Food:   []game.Point{{X: 3, Y: 6}},
	}
	g := game.Occupancy(state)

	_, dist := FloodFill(g, game.Point{X: 3, Y: 3}, 10)
	if dist != 3 {
		t.Fatalf("food distance %d, want 3", dist)
	}

	_, capped := FloodFill(g, game.Point{X: 3, Y: 3}, 2)
	if capped != -1 {
		t.Fatalf("food beyond the budget should be unreachable, got %d", capped)
	}
}

func TestEvaluateDeadIsVeryNegative(t *testing.T) {
	w := DefaultWeights()
	dead := &game.GameState{
		Width:  5,
		Height: 5,
		YouId:  "me",
		Snakes: []game.Snake{snakeColumn("opp", 50, game.Point{X: 4, Y: 4}, 2)},
	}
	alive := &game.GameState{
		Width:  5,
		Height: 5,
		YouId:  "me",
		Snakes: []game.Snake{
			snakeColumn("me", 50, game.Point{X: 1, Y: 2}, 2),
			snakeColumn("opp", 50, game.Point{X: 4, Y: 4}, 2),
		},
	}

	if Evaluate(dead, w) >= w.Death/2 {
		t.Fatal("dead state should score near the death constant")
	}
	if Evaluate(dead, w) >= Evaluate(alive, w) {
		t.Fatal("dead state should score below any living state")
	}
}

func TestEvaluateDyingLaterIsBetter(t *testing.T) {
	w := DefaultWeights()
	early := &game.GameState{Width: 5, Height: 5, YouId: "me", Turn: 3}
	late := &game.GameState{Width: 5, Height: 5, YouId: "me", Turn: 9}

	if Evaluate(late, w) <= Evaluate(early, w) {
		t.Fatal("dying on a later turn should score higher")
	}
}

func TestEvaluateVictoryBonus(t *testing.T) {
	w := DefaultWeights()
	duel := &game.GameState{
		Width:  7,
		Height: 7,
		YouId:  "me",
		Snakes: []game.Snake{
			snakeColumn("me", 80, game.Point{X: 2, Y: 3}, 3),
			snakeColumn("opp", 80, game.Point{X: 5, Y: 3}, 3),
		},
	}
	won := duel.Clone()
	won.Snakes = won.Snakes[:1]

	if Evaluate(won, w)-Evaluate(duel, w) < w.Victory/2 {
		t.Fatal("eliminating the last opponent should add the victory bonus")
	}
}

func TestEvaluateStarvationPenaltySuperLinear(t *testing.T) {
	w := DefaultWeights()
	at := func(health int32) float64 {
		s := &game.GameState{
			Width:  7,
			Height: 7,
			YouId:  "me",
			Snakes: []game.Snake{snakeColumn("me", health, game.Point{X: 3, Y: 3}, 3)},
		}
		return Evaluate(s, w)
	}

	// The marginal cost of a lost health point grows as starvation nears.
	dropHigh := at(20) - at(15)
	dropLow := at(10) - at(5)
	if dropLow <= dropHigh {
		t.Fatalf("penalty should steepen near zero: drop(10->5)=%v vs drop(20->15)=%v", dropLow, dropHigh)
	}
}

func TestEvaluateFoodTermOnlyWhenHungry(t *testing.T) {
	w := DefaultWeights()
	state := func(health int32, foodY int32) *game.GameState {
		return &game.GameState{
			Width:  9,
			Height: 9,
			YouId:  "me",
			Snakes: []game.Snake{snakeColumn("me", health, game.Point{X: 4, Y: 4}, 2)},
			Food:   []game.Point{{X: 4, Y: foodY}},
		}
	}

	hungryNear := Evaluate(state(20, 5), w)
	hungryFar := Evaluate(state(20, 8), w)
	if hungryNear <= hungryFar {
		t.Fatal("a hungry snake should prefer closer food")
	}

	fullNear := Evaluate(state(90, 5), w)
	fullFar := Evaluate(state(90, 8), w)
	if fullNear != fullFar {
		t.Fatal("food distance should not matter above the hunger threshold")
	}
}

func TestEvaluateRewardsSpaceAdvantage(t *testing.T) {
	w := DefaultWeights()
	// Same snake length and health; only maneuvering room differs. The
	// cramped snake has curled itself into a one-cell pocket at the edge.
	cramped := &game.GameState{
		Width:  7,
		Height: 7,
		YouId:  "me",
		Snakes: []game.Snake{{
			Id:     "me",
			Health: 80,
			Body:   []game.Point{{X: 0, Y: 6}, {X: 0, Y: 5}, {X: 1, Y: 5}, {X: 2, Y: 5}, {X: 2, Y: 6}},
		}},
	}
	roomy := &game.GameState{
		Width:  7,
		Height: 7,
		YouId:  "me",
		Snakes: []game.Snake{{
			Id:     "me",
			Health: 80,
			Body:   []game.Point{{X: 3, Y: 3}, {X: 3, Y: 2}, {X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}},
		}},
	}

	if Evaluate(roomy, w) <= Evaluate(cramped, w) {
		t.Fatal("more flood-fill room should score higher")
	}
}

func TestEvaluateAvoidsEqualOrLongerRivals(t *testing.T) {
	// Isolate the threat-distance term: every other weight zeroed.
	w := Weights{ThreatDistance: 60, ThreatDistanceCap: 3}
	at := func(oppX int32, oppLen int) float64 {
		s := &game.GameState{
			Width:  11,
			Height: 11,
			YouId:  "me",
			Snakes: []game.Snake{
				snakeColumn("me", 80, game.Point{X: 1, Y: 5}, 3),
				snakeColumn("opp", 80, game.Point{X: oppX, Y: 5}, oppLen),
			},
		}
		return Evaluate(s, w)
	}

	if near, far := at(3, 4), at(6, 4); near >= far {
		t.Fatalf("a longer rival two steps away should score below one five steps away: %v vs %v", near, far)
	}
	// Equal length trades a head-to-head, so it counts as a threat too.
	if near, far := at(3, 3), at(6, 3); near >= far {
		t.Fatalf("an equal-length rival should still repel: %v vs %v", near, far)
	}
	// Beyond the cap the exact distance stops mattering.
	if capped, farther := at(4, 4), at(9, 4); capped != farther {
		t.Fatalf("distances past the cap should score alike: %v vs %v", capped, farther)
	}
	// A shorter rival loses the head-to-head; no repulsion at all.
	if near, far := at(3, 2), at(6, 2); near != far {
		t.Fatalf("a shorter rival should not repel: %v vs %v", near, far)
	}
}

func TestEvaluateIsPure(t *testing.T) {
	w := DefaultWeights()
	state := &game.GameState{
		Width:  7,
		Height: 7,
		YouId:  "me",
		Snakes: []game.Snake{
			snakeColumn("me", 35, game.Point{X: 2, Y: 3}, 3),
			snakeColumn("opp", 70, game.Point{X: 5, Y: 3}, 4),
		},
		Food:    []game.Point{{X: 0, Y: 0}},
		Hazards: []game.Point{{X: 6, Y: 6}},
	}
	first := Evaluate(state, w)
	for i := 0; i < 10; i++ {
		if got := Evaluate(state, w); got != first {
			t.Fatalf("evaluation drifted: %v then %v", first, got)
		}
	}
}
