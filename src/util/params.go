package util

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryInt reads an integer query parameter, falling back to def when the
// value is absent, malformed, or below 1.
func QueryInt(values url.Values, key string, def int) int {
	v := strings.TrimSpace(values.Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// NumericValue reports whether s parses as a number, returning the parsed
// value when it does.
func NumericValue(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
