package catalog

import "math/rand/v2"

// Picker draws uniformly from catalog lists. It is not safe for concurrent
// use; each engine owns its own.
type Picker struct {
	rng *rand.Rand
}

// NewPicker wraps rng. A nil rng gets a randomly seeded source.
func NewPicker(rng *rand.Rand) *Picker {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Picker{rng: rng}
}

// IntN returns a uniform int in [0, n). n must be positive.
func (p *Picker) IntN(n int) int {
	return p.rng.IntN(n)
}

// IntBetween returns a uniform int in [lo, hi].
func (p *Picker) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + p.rng.IntN(hi-lo+1)
}

// Pick returns a uniformly chosen element, or false when items is empty.
func Pick[T any](p *Picker, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[p.rng.IntN(len(items))], true
}

// PickExcluding picks among the items whose id differs from exclude. When
// that pool is empty it picks from all of items.
func PickExcluding[T any](p *Picker, items []T, id func(T) string, exclude string) (T, bool) {
	pool := make([]T, 0, len(items))
	for _, it := range items {
		if id(it) != exclude {
			pool = append(pool, it)
		}
	}
	if len(pool) == 0 {
		return Pick(p, items)
	}
	return Pick(p, pool)
}

// Shuffle returns a shuffled copy of items.
func Shuffle[T any](p *Picker, items []T) []T {
	out := append(make([]T, 0, len(items)), items...)
	p.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
