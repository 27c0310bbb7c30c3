package parse

import (
	"strconv"
	"strings"
	"testing"

	"github.com/zen-systems/pollgate/pkg/persona"
	"github.com/zen-systems/pollgate/pkg/poll"
)

func newParser() *Parser {
	rng := persona.NewRand(1)
	return New(rng, persona.NewSynthesizer(rng))
}

func TestParseJSONEnvelope(t *testing.T) {
	p := newParser()
	q := &poll.Question{ID: "1", Text: "Thoughts?", Type: poll.TypeText}

	a := p.Parse(q, `{"answer": "I think it's fine", "confidence": 0.85, "reasoning": "gut feeling"}`)

	if a.Value.Single() != "I think it's fine" {
		t.Errorf("value = %q", a.Value.Single())
	}
	if a.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", a.Confidence)
	}
	if a.Reasoning != "gut feeling" {
		t.Errorf("reasoning = %q", a.Reasoning)
	}
	if a.QuestionID != "1" {
		t.Errorf("question id = %q", a.QuestionID)
	}
}

func TestParseJSONWrappedInProse(t *testing.T) {
	p := newParser()
	q := &poll.Question{ID: "1", Text: "Thoughts?", Type: poll.TypeText}

	raw := "Sure! Here is my answer:\n```json\n" +
		`{"answer": "probably yes", "confidence": 0.6, "reasoning": "hunch"}` +
		"\n```\nHope that helps."

	a := p.Parse(q, raw)
	if a.Value.Single() != "probably yes" {
		t.Errorf("value = %q, want %q", a.Value.Single(), "probably yes")
	}
	if a.Confidence != 0.6 {
		t.Errorf("confidence = %v, want 0.6", a.Confidence)
	}
}

func TestParseJSONValueShapes(t *testing.T) {
	p := newParser()
	q := &poll.Question{ID: "1", Text: "Pick all", Type: poll.TypeMultipleChoice,
		Options: []poll.Option{{Value: "a"}, {Value: "b"}}}

	a := p.Parse(q, `{"answer": ["a", "b"], "confidence": 0.7}`)
	if !a.Value.IsMulti() || len(a.Value.Items()) != 2 {
		t.Errorf("array answer = %#v, want multi of 2", a.Value)
	}

	a = p.Parse(q, `{"answer": 7, "confidence": 0.7}`)
	if a.Value.Single() != "7" {
		t.Errorf("numeric answer = %q, want %q", a.Value.Single(), "7")
	}
}

func TestParseConfidenceFallbacks(t *testing.T) {
	p := newParser()
	q := &poll.Question{ID: "1", Text: "Thoughts?", Type: poll.TypeText}

	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"missing", `{"answer": "x"}`, 0.7},
		{"string number", `{"answer": "x", "confidence": "0.9"}`, 0.9},
		{"garbage string", `{"answer": "x", "confidence": "high"}`, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Parse(q, tt.raw).Confidence; got != tt.want {
				t.Errorf("confidence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractYesNo(t *testing.T) {
	p := newParser()
	q := &poll.Question{ID: "1", Text: "Agree?", Type: poll.TypeYesNo,
		Options: []poll.Option{{Value: "yes"}, {Value: "no"}}}

	tests := []struct {
		raw  string
		want string
	}{
		{"Yes, absolutely.", "yes"},
		{"No, I don't think so.", "no"},
		{"That is correct.", "yes"},
		{"False, I'd say.", "no"},
		// Affirmative tokens scan first, so "disagree" matches "agree".
		{"I would disagree with that.", "yes"},
	}

	for _, tt := range tests {
		a := p.Parse(q, tt.raw)
		if a.Value.Single() != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.raw, a.Value.Single(), tt.want)
		}
		if a.Confidence != 0.7 {
			t.Errorf("Parse(%q) confidence = %v, want 0.7", tt.raw, a.Confidence)
		}
		if a.Reasoning != "Parsed from text response" {
			t.Errorf("Parse(%q) reasoning = %q", tt.raw, a.Reasoning)
		}
	}
}

func TestExtractYesNoAmbiguousFlipsCoin(t *testing.T) {
	p := newParser()
	q := &poll.Question{ID: "1", Text: "Agree?", Type: poll.TypeYesNo,
		Options: []poll.Option{{Value: "yes"}, {Value: "no"}}}

	for i := 0; i < 20; i++ {
		a := p.Parse(q, "hard to tell really")
		if v := a.Value.Single(); v != "yes" && v != "no" {
			t.Fatalf("ambiguous reply = %q", v)
		}
	}
}

func TestExtractChoiceMatchesLabelOrValue(t *testing.T) {
	p := newParser()
	q := &poll.Question{ID: "1", Text: "Favorite?", Type: poll.TypeSingleChoice,
		Options: []poll.Option{
			{Value: "opt_cats", Label: "Cats"},
			{Value: "opt_dogs", Label: "Dogs"},
		}}

	a := p.Parse(q, "Definitely dogs for me.")
	if a.Value.Single() != "opt_dogs" {
		t.Errorf("label match = %q, want %q", a.Value.Single(), "opt_dogs")
	}

	a = p.Parse(q, "I lean toward opt_cats here.")
	if a.Value.Single() != "opt_cats" {
		t.Errorf("value match = %q, want %q", a.Value.Single(), "opt_cats")
	}
}

func TestExtractChoiceNoMatchPicksOption(t *testing.T) {
	p := newParser()
	q := &poll.Question{ID: "1", Text: "Favorite?", Type: poll.TypeSingleChoice,
		Options: []poll.Option{{Value: "a"}, {Value: "b"}}}

	for i := 0; i < 20; i++ {
		v := p.Parse(q, "none of these speak to me").Value.Single()
		if v != "a" && v != "b" {
			t.Fatalf("unmatched choice = %q", v)
		}
	}
}

func TestChoiceWithoutOptionsSynthesizes(t *testing.T) {
	p := newParser()
	q := &poll.Question{ID: "1", Text: "Favorite?", Type: poll.TypeSingleChoice}

	a := p.Parse(q, "whatever you like")
	if a.Confidence != persona.FallbackConfidence {
		t.Errorf("confidence = %v, want %v", a.Confidence, persona.FallbackConfidence)
	}
	if a.Reasoning != persona.FallbackReasoning {
		t.Errorf("reasoning = %q, want %q", a.Reasoning, persona.FallbackReasoning)
	}
}

func TestExtractRating(t *testing.T) {
	p := newParser()
	q := &poll.Question{ID: "1", Text: "Rate it", Type: poll.TypeRating}

	a := p.Parse(q, "I'd rate it 8 out of 10.")
	if a.Value.Single() != "8" {
		t.Errorf("rating = %q, want %q", a.Value.Single(), "8")
	}

	a = p.Parse(q, "pretty good I guess")
	n, err := strconv.Atoi(a.Value.Single())
	if err != nil || n < 3 || n > 7 {
		t.Errorf("fallback rating = %q, want integer within [3, 7]", a.Value.Single())
	}
}

func TestExtractTextTruncates(t *testing.T) {
	p := newParser()
	q := &poll.Question{ID: "1", Text: "Thoughts?", Type: poll.TypeText}

	long := strings.Repeat("é", 300)
	a := p.Parse(q, long)

	got := a.Value.Single()
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncated value lacks ellipsis: %q", got)
	}
	if runes := []rune(strings.TrimSuffix(got, "...")); len(runes) != 200 {
		t.Errorf("truncated to %d runes, want 200", len(runes))
	}
}

func TestExtractTextEmptyReply(t *testing.T) {
	p := newParser()
	q := &poll.Question{ID: "1", Text: "Thoughts?", Type: poll.TypeText}

	a := p.Parse(q, "   ")
	if a.Value.Single() != "I'm not sure about this one." {
		t.Errorf("empty reply = %q", a.Value.Single())
	}
}
