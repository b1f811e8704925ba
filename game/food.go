// food.go implements food spawning for self-play games.
//
// The in-search simulator never spawns food: lookahead assumes none will
// appear and adapts on the next real turn. Spawning only runs between real
// turns of an arena game.

package game

import (
	"hash/fnv"
	"math/rand"
)

// FoodSettings controls food spawning behavior.
type FoodSettings struct {
	MinimumFood     int // guaranteed minimum on board after every turn
	FoodSpawnChance int // percentage chance (0-100) of one extra food per turn
}

// DefaultFoodSettings matches the common engine defaults.
var DefaultFoodSettings = FoodSettings{MinimumFood: 1, FoodSpawnChance: 15}

// SpawnFood tops the board up to the configured minimum and rolls for one
// extra food item, placing food only on cells free of snakes and food.
// With a nil rng, placement is deterministic in the state and salt, which
// keeps replays reproducible.
func SpawnFood(state *GameState, rng *rand.Rand, settings FoodSettings, salt uint64) {
	if state == nil || state.Width <= 0 || state.Height <= 0 {
		return
	}
	if settings.MinimumFood < 0 {
		settings.MinimumFood = 0
	}
	if settings.FoodSpawnChance < 0 {
		settings.FoodSpawnChance = 0
	}
	if settings.FoodSpawnChance > 100 {
		settings.FoodSpawnChance = 100
	}

	deficit := settings.MinimumFood - len(state.Food)
	if deficit < 0 {
		deficit = 0
	}

	var roll func(n int) int
	if rng != nil {
		roll = rng.Intn
	} else {
		seq := spawnSeed(state, salt)
		roll = func(n int) int {
			seq = splitmix64(seq)
			return int(seq % uint64(n))
		}
	}

	spawnExtra := settings.FoodSpawnChance > 0 && roll(100) < settings.FoodSpawnChance
	toSpawn := deficit
	if spawnExtra {
		toSpawn++
	}
	if toSpawn == 0 {
		return
	}

	grid := Occupancy(state)
	free := make([]Point, 0, int(state.Width)*int(state.Height))
	for y := int32(0); y < state.Height; y++ {
		for x := int32(0); x < state.Width; x++ {
			p := Point{X: x, Y: y}
			if !grid.Blocked(p) && !grid.Food(p) {
				free = append(free, p)
			}
		}
	}

	for ; toSpawn > 0 && len(free) > 0; toSpawn-- {
		i := roll(len(free))
		state.Food = append(state.Food, free[i])
		free[i] = free[len(free)-1]
		free = free[:len(free)-1]
	}
}

// spawnSeed mixes the cheap identifying parts of a state into a seed.
// Intentionally shallow: full-body hashing is not worth it per spawn.
func spawnSeed(state *GameState, salt uint64) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		for i := range buf {
			buf[i] = byte(v >> (8 * i))
		}
		_, _ = h.Write(buf[:])
	}
	put(uint64(uint32(state.Width)) | uint64(uint32(state.Height))<<32)
	put(uint64(uint32(state.Turn)))
	put(uint64(len(state.Food)))
	put(salt)
	for i := range state.Snakes {
		_, _ = h.Write([]byte(state.Snakes[i].Id))
		head := state.Snakes[i].Body[0]
		put(uint64(uint32(head.X))<<32 | uint64(uint32(head.Y)))
	}
	return h.Sum64()
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
