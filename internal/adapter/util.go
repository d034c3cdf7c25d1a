package adapter

import (
	"encoding/json"
	"strconv"
)

// stringID returns the first non-empty candidate id as a string. Upstream
// APIs are inconsistent about whether ids are JSON strings or numbers, so
// candidates arrive as decoded any values.
func stringID(candidates ...any) string {
	for _, v := range candidates {
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case json.Number:
			if t.String() != "" {
				return t.String()
			}
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		case int64:
			return strconv.FormatInt(t, 10)
		case int:
			return strconv.Itoa(t)
		}
	}
	return ""
}
