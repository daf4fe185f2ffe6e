// Package timerange parses and compares the ISO-8601 time intervals used for
// tutor free-time slots. Ranges are half-open: [Start, End).
package timerange

import (
	"errors"
	"time"
)

var (
	// ErrMalformed indicates a timestamp that is not valid ISO-8601
	ErrMalformed = errors.New("invalid datetime format, use ISO 8601 (e.g. 2025-12-01T09:00:00Z)")

	// ErrStartNotBeforeEnd indicates start >= end
	ErrStartNotBeforeEnd = errors.New("start time must be before end time")
)

// Range is a validated half-open time interval [Start, End)
type Range struct {
	Start time.Time
	End   time.Time
}

// ParseInstant parses a single ISO-8601 timestamp. A trailing Z (Zulu time)
// and numeric offsets are both accepted via RFC 3339.
func ParseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrMalformed
	}
	return t, nil
}

// Parse validates a (start, end) pair of ISO-8601 strings and returns the
// parsed range. Pure function, no side effects.
func Parse(start, end string) (Range, error) {
	s, err := ParseInstant(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseInstant(end)
	if err != nil {
		return Range{}, err
	}
	return New(s, e)
}

// New builds a Range from parsed instants, enforcing start < end.
func New(start, end time.Time) (Range, error) {
	if !start.Before(end) {
		return Range{}, ErrStartNotBeforeEnd
	}
	return Range{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open ranges intersect:
// [s1,e1) and [s2,e2) overlap iff s1 < e2 && e1 > s2.
// Touching ranges (e1 == s2) do not overlap, so back-to-back slots are fine.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Contains reports whether other lies fully inside [r.Start, r.End], both
// boundaries inclusive. Used by schedule queries.
func (r Range) Contains(other Range) bool {
	return !other.Start.Before(r.Start) && !other.End.After(r.End)
}

// Duration returns the length of the range.
func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}
