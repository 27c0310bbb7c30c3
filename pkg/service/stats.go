package service

import (
	"math"
	"sync"

	"github.com/zen-systems/pollgate/pkg/poll"
)

// Tracker accumulates the process-wide request and cost counters. It is
// shared by every concurrently running generation, so all access is
// serialized; there is no other shared mutable state between questions.
type Tracker struct {
	mu       sync.Mutex
	requests int
	cost     float64
}

// Record counts one successful provider call and its cost estimate.
func (t *Tracker) Record(cost float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requests++
	t.cost += cost
}

// Reset zeroes the counters.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requests = 0
	t.cost = 0
}

// Snapshot returns the current counters with provider availability folded in.
func (t *Tracker) Snapshot(openaiAvailable, anthropicAvailable bool) poll.Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	avg := 0.0
	if t.requests > 0 {
		avg = t.cost / float64(t.requests)
	}

	return poll.Stats{
		TotalRequests:      t.requests,
		TotalCost:          round4(t.cost),
		AvgCostPerRequest:  round4(avg),
		OpenAIAvailable:    openaiAvailable,
		AnthropicAvailable: anthropicAvailable,
	}
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
