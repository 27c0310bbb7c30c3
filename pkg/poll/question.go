// Package poll defines the data contracts flowing through the answer
// pipeline: questions as submitted by the caller, answers as returned to it,
// and the service statistics snapshot.
package poll

import "fmt"

// Type classifies how a question expects to be answered.
type Type string

const (
	TypeYesNo          Type = "yes-no"
	TypeSingleChoice   Type = "single-choice"
	TypeMultipleChoice Type = "multiple-choice"
	TypeText           Type = "text"
	TypeRating         Type = "rating"
)

// Valid reports whether t is a known question type.
func (t Type) Valid() bool {
	switch t {
	case TypeYesNo, TypeSingleChoice, TypeMultipleChoice, TypeText, TypeRating:
		return true
	}
	return false
}

// NeedsOptions reports whether questions of this type must carry options.
func (t Type) NeedsOptions() bool {
	switch t {
	case TypeYesNo, TypeSingleChoice, TypeMultipleChoice:
		return true
	}
	return false
}

// Types lists every supported question type.
func Types() []Type {
	return []Type{TypeYesNo, TypeSingleChoice, TypeMultipleChoice, TypeText, TypeRating}
}

// Option is one selectable answer for a choice-style question.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// Text returns the display text for the option: the label when present,
// otherwise the value.
func (o Option) Text() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// Selection returns the value submitted when this option is picked: the
// value when present, otherwise the label.
func (o Option) Selection() string {
	if o.Value != "" {
		return o.Value
	}
	return o.Label
}

// Question is a single poll/survey question. It is owned by the caller and
// read-only through the pipeline.
type Question struct {
	ID       ID       `json:"id"`
	Text     string   `json:"text"`
	Type     Type     `json:"type"`
	Options  []Option `json:"options,omitempty"`
	Required bool     `json:"required,omitempty"`
}

// ValidationError reports a structurally invalid question. It aborts the
// whole batch: a malformed question is a caller contract violation, not a
// transient condition.
type ValidationError struct {
	ID     ID
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid question: %s", e.Reason)
	}
	return fmt.Sprintf("invalid question %s: %s", e.ID, e.Reason)
}

// Validate checks the structural invariants of a question.
func (q *Question) Validate() error {
	if q.ID == "" {
		return &ValidationError{Reason: "missing id"}
	}
	if q.Text == "" {
		return &ValidationError{ID: q.ID, Reason: "missing text"}
	}
	if q.Type == "" {
		return &ValidationError{ID: q.ID, Reason: "missing type"}
	}
	if !q.Type.Valid() {
		return &ValidationError{ID: q.ID, Reason: fmt.Sprintf("unknown type %q", q.Type)}
	}
	if q.Type.NeedsOptions() && len(q.Options) == 0 {
		return &ValidationError{ID: q.ID, Reason: fmt.Sprintf("type %q requires options", q.Type)}
	}
	return nil
}

// ValidateAll checks every question, returning the first violation.
func ValidateAll(questions []Question) error {
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
