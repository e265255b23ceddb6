package dto

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ScheduleEntryID carries the solver's free-text activity id. Ids that parse
// as integers serialise as JSON numbers, everything else as strings, matching
// what consumers of the summary expect.
type ScheduleEntryID string

// MarshalJSON coerces numeric-looking ids to numbers.
func (id ScheduleEntryID) MarshalJSON() ([]byte, error) {
	trimmed := strings.TrimSpace(string(id))
	if isNumericID(trimmed) {
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return []byte(strconv.FormatInt(n, 10)), nil
		}
	}
	return json.Marshal(trimmed)
}

// isNumericID accepts an optional leading minus followed by digits only. An
// explicit plus sign keeps the id textual.
func isNumericID(s string) bool {
	body := strings.TrimPrefix(s, "-")
	if body == "" {
		return false
	}
	for _, r := range body {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// UnmarshalJSON accepts both number and string forms.
func (id *ScheduleEntryID) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*id = ScheduleEntryID(raw)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ScheduleEntryID(n.String())
	return nil
}
