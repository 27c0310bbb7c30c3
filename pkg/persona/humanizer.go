package persona

import (
	"strings"

	"github.com/zen-systems/pollgate/pkg/poll"
)

// MinConfidence is the floor confidence after humanization.
const MinConfidence = 0.2

const (
	uncertaintyChance = 0.3
	hedgingChance     = 0.2
)

// Humanizer post-processes answers so they read less machine-perfect. Apply
// it exactly once per answer: repeated application compounds prefixes and
// suffixes.
type Humanizer struct {
	rng *Rand
}

// NewHumanizer creates a humanizer drawing from rng.
func NewHumanizer(rng *Rand) *Humanizer {
	return &Humanizer{rng: rng}
}

// Humanize rewords free-text answers with uncertainty and hedging markers and
// lowers the confidence of every answer by a uniform amount in [0.1, 0.3],
// floored at MinConfidence. Confidence never increases through this step.
func (h *Humanizer) Humanize(a *poll.Answer, q *poll.Question) {
	if q.Type == poll.TypeText && !a.Value.IsMulti() {
		if h.rng.Float64() < uncertaintyChance {
			lead := h.rng.Pick(uncertaintyPhrases)
			a.Value = poll.SingleValue(lead + " " + strings.ToLower(a.Value.Single()))
		}
		if h.rng.Float64() < hedgingChance {
			a.Value = poll.SingleValue(a.Value.Single() + ", " + h.rng.Pick(hedgingPhrases))
		}
	}

	drop := 0.1 + h.rng.Float64()*0.2
	a.Confidence -= drop
	if a.Confidence < MinConfidence {
		a.Confidence = MinConfidence
	}
}
