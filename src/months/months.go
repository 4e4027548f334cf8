package months

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ReferenceYear anchors every month window. The seeded dataset is synthetic
// and dated within this single year.
const ReferenceYear = 2022

// ErrUnknownMonth reports a month name outside the twelve English names.
var ErrUnknownMonth = errors.New("unknown month")

var names = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// Range is the half-open interval [Start, End) covering one calendar month.
type Range struct {
	Start time.Time
	End   time.Time
}

// Resolve maps a full English month name, case-insensitively, to its window
// in the reference year. December's window ends at January 1st of the
// following year.
func Resolve(name string) (Range, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == needle {
			start := time.Date(ReferenceYear, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
			return Range{Start: start, End: start.AddDate(0, 1, 0)}, nil
		}
	}
	return Range{}, fmt.Errorf("%w: %q", ErrUnknownMonth, name)
}
