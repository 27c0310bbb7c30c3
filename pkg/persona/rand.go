// Package persona makes machine answers read like a person wrote them. It
// holds the shared phrase tables, the fallback synthesizer used when no
// provider answer is available, and the humanizer that lowers confidence and
// injects hedging language.
package persona

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the single random source behind every randomized decision in the
// pipeline. It is safe for concurrent use and seedable so tests can fix the
// sequence. Business logic never reaches for ambient randomness directly.
type Rand struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRand creates a source from seed. A zero seed derives one from the clock.
func NewRand(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{src: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}

// Between returns a uniform integer in [lo, hi], inclusive on both ends.
func (r *Rand) Between(lo, hi int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.src.Intn(hi-lo+1)
}

// Duration returns a uniform duration in [lo, hi].
func (r *Rand) Duration(lo, hi time.Duration) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + time.Duration(r.src.Int63n(int64(hi-lo)+1))
}

// Pick returns a uniformly chosen element of items.
func (r *Rand) Pick(items []string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return items[r.src.Intn(len(items))]
}
