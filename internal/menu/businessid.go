package menu

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var integerPattern = regexp.MustCompile(`^-?\d+$`)

// BusinessID is a business identifier normalized to a canonical query value
// (used in store lookups) and a canonical display string.
type BusinessID struct {
	Query   string
	Display string
}

// NormalizeBusinessID accepts a JSON integer, a big-integer-as-string, or an
// arbitrary non-numeric string. Integers within int64 range are canonicalized
// so "007" and 7 address the same record; larger integers and opaque strings
// keep their trimmed form.
func NormalizeBusinessID(raw json.RawMessage) (BusinessID, error) {
	if len(raw) == 0 {
		return BusinessID{}, ErrInvalidBusinessID
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return BusinessID{}, ErrInvalidBusinessID
	}

	switch v := value.(type) {
	case json.Number:
		return normalizeBusinessString(v.String())
	case string:
		return normalizeBusinessString(v)
	default:
		return BusinessID{}, ErrInvalidBusinessID
	}
}

// ParseBusinessID normalizes a business identifier taken from a query
// parameter, applying the same rules as NormalizeBusinessID
func ParseBusinessID(s string) (BusinessID, error) {
	return normalizeBusinessString(s)
}

func normalizeBusinessString(s string) (BusinessID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return BusinessID{}, ErrInvalidBusinessID
	}

	if integerPattern.MatchString(trimmed) {
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return BusinessID{Query: strconv.FormatInt(n, 10), Display: trimmed}, nil
		}
		// big integers beyond int64 stay verbatim
	}
	return BusinessID{Query: trimmed, Display: trimmed}, nil
}
