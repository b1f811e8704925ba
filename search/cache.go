package search

import (
	"container/list"
	"hash/fnv"
	"sort"

	"github.com/snakeoil/strangle/game"
)

// Transposition cache: a bounded map from canonical state hashes to
// previously computed scores, with least-recently-used eviction. It is
// owned by a single search invocation and discarded with it; the search
// is correct with the cache disabled, this only avoids re-expanding
// states reachable through different move orders.

const (
	ttExact = iota
	ttLower
	ttUpper
)

type ttEntry struct {
	key   uint64
	depth int
	score float64
	flag  int
}

type transTable struct {
	cap   int
	ll    *list.List
	items map[uint64]*list.Element
}

func newTransTable(capacity int) *transTable {
	if capacity <= 0 {
		return nil
	}
	return &transTable{
		cap:   capacity,
		ll:    list.New(),
		items: make(map[uint64]*list.Element, capacity),
	}
}

// get returns the cached entry if it was computed at exactly this depth.
// Deeper entries would be at least as accurate, but substituting them
// changes scores relative to a fixed-depth search; exact matching keeps
// the cached and uncached searches bit-identical.
func (t *transTable) get(key uint64, depth int) (ttEntry, bool) {
	if t == nil {
		return ttEntry{}, false
	}
	el, ok := t.items[key]
	if !ok {
		return ttEntry{}, false
	}
	entry := el.Value.(ttEntry)
	if entry.depth != depth {
		return ttEntry{}, false
	}
	t.ll.MoveToFront(el)
	return entry, true
}

func (t *transTable) put(key uint64, depth int, score float64, flag int) {
	if t == nil {
		return
	}
	if el, ok := t.items[key]; ok {
		el.Value = ttEntry{key: key, depth: depth, score: score, flag: flag}
		t.ll.MoveToFront(el)
		return
	}
	if t.ll.Len() >= t.cap {
		oldest := t.ll.Back()
		if oldest != nil {
			t.ll.Remove(oldest)
			delete(t.items, oldest.Value.(ttEntry).key)
		}
	}
	t.items[key] = t.ll.PushFront(ttEntry{key: key, depth: depth, score: score, flag: flag})
}

func (t *transTable) len() int {
	if t == nil {
		return 0
	}
	return t.ll.Len()
}

// hashState canonicalizes and hashes the parts of a state the evaluator
// and simulator depend on: dimensions, turn, snakes (sorted by id, with
// health and full bodies) and the food set (sorted). Hazards are fixed
// for the lifetime of a search invocation and are left out.
func hashState(state *game.GameState) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		for i := range buf {
			buf[i] = byte(v >> (8 * i))
		}
		_, _ = h.Write(buf[:])
	}
	putPoint := func(p game.Point) {
		put(uint64(uint32(p.X))<<32 | uint64(uint32(p.Y)))
	}

	put(uint64(uint32(state.Width)) | uint64(uint32(state.Height))<<32)
	put(uint64(uint32(state.Turn)))

	ids := state.AliveIDs()
	for _, id := range ids {
		s := state.Snake(id)
		_, _ = h.Write([]byte(s.Id))
		put(uint64(uint32(s.Health)))
		put(uint64(len(s.Body)))
		for _, p := range s.Body {
			putPoint(p)
		}
	}

	food := make([]game.Point, len(state.Food))
	copy(food, state.Food)
	sort.Slice(food, func(i, j int) bool {
		if food[i].Y != food[j].Y {
			return food[i].Y < food[j].Y
		}
		return food[i].X < food[j].X
	})
	put(uint64(len(food)))
	for _, f := range food {
		putPoint(f)
	}

	return h.Sum64()
}
