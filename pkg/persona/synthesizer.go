package persona

import (
	"strconv"

	"github.com/zen-systems/pollgate/pkg/poll"
)

// FallbackReasoning marks an answer that was synthesized without any
// provider involvement.
const FallbackReasoning = "Fallback answer due to API failure"

// FallbackConfidence is the confidence assigned to synthesized answers,
// before humanization.
const FallbackConfidence = 0.3

// Synthesizer produces a plausible answer with no provider call, for use when
// provider calls exhaust retries or parsing is unrecoverable. It never fails.
type Synthesizer struct {
	rng *Rand
}

// NewSynthesizer creates a synthesizer drawing from rng.
func NewSynthesizer(rng *Rand) *Synthesizer {
	return &Synthesizer{rng: rng}
}

// Answer fabricates a fallback answer appropriate to the question type.
func (s *Synthesizer) Answer(q *poll.Question) poll.Answer {
	return poll.Answer{
		QuestionID: q.ID,
		Value:      poll.SingleValue(s.value(q)),
		Confidence: FallbackConfidence,
		Reasoning:  FallbackReasoning,
	}
}

func (s *Synthesizer) value(q *poll.Question) string {
	switch q.Type {
	case poll.TypeYesNo:
		return s.rng.Pick([]string{"yes", "no"})
	case poll.TypeSingleChoice, poll.TypeMultipleChoice:
		if len(q.Options) > 0 {
			return q.Options[s.rng.Between(0, len(q.Options)-1)].Selection()
		}
		return s.rng.Pick(noncommittalPhrases)
	case poll.TypeRating:
		return strconv.Itoa(s.rng.Between(3, 7))
	default:
		return s.rng.Pick(noncommittalPhrases)
	}
}
