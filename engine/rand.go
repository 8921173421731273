package engine

// Rand is a seedable xorshift64 source threaded through every chance point
// in a match. Identical seeds and action sequences replay identically.
type Rand struct {
	state       uint64
	forcedHeads bool
}

// NewRand returns a Rand seeded with seed. A zero seed is remapped because
// xorshift cannot leave the zero state.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		seed = 1
	}
	return Rand{state: seed}
}

func (r *Rand) next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

// Uint64 returns the next raw value from the generator (seeding sub-matches).
func (r *Rand) Uint64() uint64 { return r.next() }

// IntN returns a value in [0, n). n must be positive.
func (r *Rand) IntN(n int) int {
	return int(r.next() % uint64(n))
}

// CoinFlip returns true for heads. A pending forced-heads flag (set by card
// effects) consumes itself on the next flip.
func (r *Rand) CoinFlip() bool {
	if r.forcedHeads {
		r.forcedHeads = false
		return true
	}
	return r.next()&1 == 1
}

// CoinFlips flips count coins and returns the number of heads.
func (r *Rand) CoinFlips(count int) int {
	heads := 0
	for i := 0; i < count; i++ {
		if r.CoinFlip() {
			heads++
		}
	}
	return heads
}

// ForceHeads makes the next coin flip land heads.
func (r *Rand) ForceHeads() { r.forcedHeads = true }

// Shuffle permutes the slice in place (Fisher-Yates).
func (r *Rand) Shuffle(cards []*CardDef) {
	for i := len(cards) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
