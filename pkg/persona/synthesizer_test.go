package persona

import (
	"strconv"
	"testing"

	"github.com/zen-systems/pollgate/pkg/poll"
)

func TestSynthesizerYesNo(t *testing.T) {
	s := NewSynthesizer(NewRand(1))
	q := &poll.Question{ID: "1", Text: "Agree?", Type: poll.TypeYesNo,
		Options: []poll.Option{{Value: "yes"}, {Value: "no"}}}

	for i := 0; i < 20; i++ {
		a := s.Answer(q)
		if v := a.Value.Single(); v != "yes" && v != "no" {
			t.Fatalf("yes-no fallback = %q", v)
		}
		if a.Confidence != FallbackConfidence {
			t.Fatalf("confidence = %v, want %v", a.Confidence, FallbackConfidence)
		}
		if a.Reasoning != FallbackReasoning {
			t.Fatalf("reasoning = %q, want %q", a.Reasoning, FallbackReasoning)
		}
		if a.QuestionID != q.ID {
			t.Fatalf("question id = %q, want %q", a.QuestionID, q.ID)
		}
	}
}

func TestSynthesizerChoicePicksFromOptions(t *testing.T) {
	s := NewSynthesizer(NewRand(1))
	q := &poll.Question{ID: "2", Text: "Pick", Type: poll.TypeSingleChoice,
		Options: []poll.Option{{Value: "a", Label: "A"}, {Value: "b"}, {Label: "C"}}}

	valid := map[string]bool{"a": true, "b": true, "C": true}
	for i := 0; i < 20; i++ {
		a := s.Answer(q)
		if !valid[a.Value.Single()] {
			t.Fatalf("choice fallback %q not an option selection", a.Value.Single())
		}
	}
}

func TestSynthesizerRatingIsModerate(t *testing.T) {
	s := NewSynthesizer(NewRand(1))
	q := &poll.Question{ID: "3", Text: "Rate it", Type: poll.TypeRating}

	for i := 0; i < 50; i++ {
		a := s.Answer(q)
		n, err := strconv.Atoi(a.Value.Single())
		if err != nil {
			t.Fatalf("rating fallback %q not numeric", a.Value.Single())
		}
		if n < 3 || n > 7 {
			t.Fatalf("rating fallback = %d, want within [3, 7]", n)
		}
	}
}

func TestSynthesizerTextIsNoncommittal(t *testing.T) {
	s := NewSynthesizer(NewRand(1))
	q := &poll.Question{ID: "4", Text: "Thoughts?", Type: poll.TypeText}

	phrases := map[string]bool{}
	for _, p := range noncommittalPhrases {
		phrases[p] = true
	}

	a := s.Answer(q)
	if !phrases[a.Value.Single()] {
		t.Errorf("text fallback %q not a noncommittal phrase", a.Value.Single())
	}
}
