package poll

import (
	"encoding/json"
	"strings"
)

// Value holds an answer payload: either a single string or an ordered list of
// strings, depending on the question type. It marshals to a JSON string or
// array accordingly.
type Value struct {
	single string
	multi  []string
}

// SingleValue wraps one string selection.
func SingleValue(s string) Value {
	return Value{single: s}
}

// MultiValue wraps an ordered list of selections.
func MultiValue(items []string) Value {
	return Value{multi: items}
}

// IsMulti reports whether the value carries a list of selections.
func (v Value) IsMulti() bool {
	return v.multi != nil
}

// Single returns the single selection, or the empty string for list values.
func (v Value) Single() string {
	return v.single
}

// Items returns the list of selections, or nil for single values.
func (v Value) Items() []string {
	return v.multi
}

// String renders the value for display.
func (v Value) String() string {
	if v.IsMulti() {
		return strings.Join(v.multi, ", ")
	}
	return v.single
}

// MarshalJSON emits a string for single values and an array for lists.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsMulti() {
		return json.Marshal(v.multi)
	}
	return json.Marshal(v.single)
}

// UnmarshalJSON accepts a JSON string or an array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = SingleValue(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*v = MultiValue(items)
	return nil
}

// Answer is the pipeline's output for one question. QuestionID always equals
// the originating question's ID. Confidence stays in [0, 1]; the humanizer
// may lower it once before the answer reaches the caller, never raise it.
type Answer struct {
	QuestionID ID      `json:"question_id"`
	Value      Value   `json:"value"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}
