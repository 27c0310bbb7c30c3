package poll

import (
	"encoding/json"
	"strconv"
)

// ID identifies a question within a batch. Callers send either a JSON number
// or a JSON string; both decode into the same value so an answer's
// question_id always round-trips in the form the caller used.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits a bare number when the ID is a canonical integer,
// otherwise a string. Forms ParseInt accepts but JSON does not ("007", "+7")
// must stay quoted or the surrounding document fails to encode.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}
