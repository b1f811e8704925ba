package search

import (
	"math"
	"time"

	"github.com/snakeoil/strangle/game"
	"github.com/snakeoil/strangle/rules"
)

// Result is the outcome of one search invocation.
//
// NoMove is the sentinel for a root with zero legal moves, which only
// happens when the controlled snake is already dead. It is a run
// condition for the adapter to handle, never a move to forward.
type Result struct {
	Move   int
	NoMove bool
	Score  float64
	Depth  int // deepest fully completed iteration
	Nodes  int
}

// Search picks the best move for state.YouId within the given wall-clock
// budget, minus the configured safety margin.
//
// It iteratively deepens: each depth is a full adversarial search, and
// the deadline aborts the current depth without touching the best move
// from the last completed one, so a legal move is always returned when
// the root has any. The controlled snake maximizes; opponents follow the
// configured mode. Ties break toward the fixed move priority order, so
// equal inputs always produce equal outputs.
func Search(state *game.GameState, cfg Config, budget time.Duration) Result {
	rootMoves := rules.LegalMoves(state, state.YouId)
	if len(rootMoves) == 0 {
		return Result{NoMove: true}
	}
	if cfg.CheckEvery <= 0 {
		cfg.CheckEvery = 256
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 24
	}

	s := &searcher{
		cfg:        cfg,
		deadline:   time.Now().Add(budget - cfg.SafetyMargin),
		multisnake: len(state.Snakes) > 1,
		tt:         newTransTable(cfg.CacheSize),
	}

	result := Result{Move: rootMoves[0]}
	ordered := append([]int(nil), rootMoves...)

	for depth := 1; depth <= cfg.MaxDepth; depth++ {
		if time.Now().After(s.deadline) {
			break
		}

		move, score, complete := s.searchRoot(state, ordered, depth)
		if !complete {
			break
		}

		result.Move = move
		result.Score = score
		result.Depth = depth

		// Feed the best move back as the first candidate of the next,
		// deeper iteration to sharpen pruning.
		ordered = frontload(rootMoves, move)
	}

	result.Nodes = s.nodes
	return result
}

// evaluate is swappable so tests can slow leaf scoring down and hit the
// deadline guard deterministically.
var evaluate = Evaluate

type searcher struct {
	cfg      Config
	deadline time.Time
	// multisnake records whether opponents existed at the root. A game
	// that started solo never reaches the last-snake-standing terminal:
	// cutting off there would collapse every solo search to one ply.
	multisnake bool
	nodes      int
	expired    bool
	tt         *transTable
}

// expand accounts one node expansion and occasionally checks the clock.
// Checking every expansion would slow the search more than an occasional
// small overrun of the margin costs.
func (s *searcher) expand() bool {
	if s.expired {
		return false
	}
	s.nodes++
	if s.nodes%s.cfg.CheckEvery == 0 && time.Now().After(s.deadline) {
		s.expired = true
	}
	return !s.expired
}

// searchRoot runs one full-depth iteration. complete is false when the
// deadline fired mid-iteration, in which case the partial result must be
// discarded.
func (s *searcher) searchRoot(state *game.GameState, moves []int, depth int) (move int, score float64, complete bool) {
	alpha := math.Inf(-1)
	beta := math.Inf(1)
	bestMove := moves[0]
	bestScore := math.Inf(-1)

	for _, m := range moves {
		v, ok := s.opponentsNode(state, m, depth, alpha, beta)
		if !ok {
			return 0, 0, false
		}
		if v > bestScore {
			bestScore = v
			bestMove = m
		}
		if v > alpha {
			alpha = v
		}
	}

	return bestMove, bestScore, true
}

// opponentsNode resolves the opponents' joint reply to the controlled
// snake's move, then recurses. Paranoid mode minimizes over the joint
// moves with alpha-beta pruning; expectation mode averages them, which
// rules out pruning on these bounds, so children get a full window.
func (s *searcher) opponentsNode(state *game.GameState, myMove int, depth int, alpha, beta float64) (float64, bool) {
	opponents, moveLists := opponentMoves(state)

	movesMap := make(map[string]int, len(opponents)+1)
	movesMap[state.YouId] = myMove

	if len(opponents) == 0 {
		next := rules.NextState(state, movesMap, s.cfg.Rules)
		return s.maxNode(next, depth-1, alpha, beta)
	}

	combo := make([]int, len(opponents))

	switch s.cfg.OpponentMode {
	case Expectation:
		sum := 0.0
		count := 0
		for {
			for i, id := range opponents {
				movesMap[id] = moveLists[i][combo[i]]
			}
			next := rules.NextState(state, movesMap, s.cfg.Rules)
			v, ok := s.maxNode(next, depth-1, math.Inf(-1), math.Inf(1))
			if !ok {
				return 0, false
			}
			sum += v
			count++
			if !advance(combo, moveLists) {
				break
			}
		}
		return sum / float64(count), true

	default: // Paranoid
		worst := math.Inf(1)
		for {
			for i, id := range opponents {
				movesMap[id] = moveLists[i][combo[i]]
			}
			next := rules.NextState(state, movesMap, s.cfg.Rules)
			childBeta := beta
			if worst < childBeta {
				childBeta = worst
			}
			v, ok := s.maxNode(next, depth-1, alpha, childBeta)
			if !ok {
				return 0, false
			}
			if v < worst {
				worst = v
			}
			if worst <= alpha {
				break
			}
			if !advance(combo, moveLists) {
				break
			}
		}
		return worst, true
	}
}

// maxNode is the controlled snake's turn: maximize over its legal moves.
func (s *searcher) maxNode(state *game.GameState, depth int, alpha, beta float64) (float64, bool) {
	if !s.expand() {
		return 0, false
	}

	won := s.multisnake && rules.IsGameOver(state)
	if state.You() == nil || depth <= 0 || won {
		return evaluate(state, s.cfg.Weights), true
	}

	alphaOrig := alpha
	var key uint64
	if s.tt != nil {
		key = hashState(state)
		if e, ok := s.tt.get(key, depth); ok {
			switch e.flag {
			case ttExact:
				return e.score, true
			case ttLower:
				if e.score > alpha {
					alpha = e.score
				}
			case ttUpper:
				if e.score < beta {
					beta = e.score
				}
			}
			if alpha >= beta {
				return e.score, true
			}
		}
	}

	moves := rules.LegalMoves(state, state.YouId)
	if len(moves) == 0 {
		return evaluate(state, s.cfg.Weights), true
	}

	best := math.Inf(-1)
	for _, m := range moves {
		v, ok := s.opponentsNode(state, m, depth, alpha, beta)
		if !ok {
			return 0, false
		}
		if v > best {
			best = v
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}

	if s.tt != nil {
		flag := ttExact
		if best <= alphaOrig {
			flag = ttUpper
		} else if best >= beta {
			flag = ttLower
		}
		s.tt.put(key, depth, best, flag)
	}

	return best, true
}

// opponentMoves lists the living opponents in ascending id order together
// with each one's candidate moves. An opponent with no candidates (which
// cannot happen for a living snake, but belt and braces) falls back to
// the same default the simulator uses for missing moves.
func opponentMoves(state *game.GameState) ([]string, [][]int) {
	ids := state.AliveIDs()
	opponents := make([]string, 0, len(ids))
	moveLists := make([][]int, 0, len(ids))
	for _, id := range ids {
		if id == state.YouId {
			continue
		}
		moves := rules.LegalMoves(state, id)
		if len(moves) == 0 {
			moves = []int{rules.MoveUp}
		}
		opponents = append(opponents, id)
		moveLists = append(moveLists, moves)
	}
	return opponents, moveLists
}

// advance steps the joint-move odometer; false when it wraps.
func advance(combo []int, moveLists [][]int) bool {
	for i := len(combo) - 1; i >= 0; i-- {
		combo[i]++
		if combo[i] < len(moveLists[i]) {
			return true
		}
		combo[i] = 0
	}
	return false
}

// frontload returns moves with best first and the rest in their original
// priority order.
func frontload(moves []int, best int) []int {
	out := make([]int, 0, len(moves))
	out = append(out, best)
	for _, m := range moves {
		if m != best {
			out = append(out, m)
		}
	}
	return out
}
