package models

import (
	"time"

	"github.com/tutorhub/tutorhub-api/pkg/timerange"
)

// FirstSlotID is the floor for slot id assignment; ids below it are reserved
// for seed data.
const FirstSlotID = 101

// Slot is a tutor-declared free time interval available for booking.
// Interval semantics are half-open: [Start, End).
type Slot struct {
	ID      int       `json:"id"`
	TutorID string    `json:"tutor_id,omitempty"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// Range returns the slot's interval for overlap checks.
func (s *Slot) Range() timerange.Range {
	return timerange.Range{Start: s.Start, End: s.End}
}

// TutorSchedule is the per-tutor slot collection as persisted.
type TutorSchedule struct {
	TutorID string  `json:"tutor_id"`
	Slots   []*Slot `json:"slots"`
}
