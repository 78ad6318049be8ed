package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Slot is the scheduling projection of an appointment: a half-open
// interval [start, start+duration) in minutes since midnight on a
// calendar date.
type Slot struct {
	ID              uuid.UUID
	Date            time.Time
	StartMinutes    int
	DurationMinutes int
	PetName         string
}

func (s Slot) EndMinutes() int {
	return s.StartMinutes + s.DurationMinutes
}

func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Overlaps reports whether two slots collide on the same calendar date.
// A slot never overlaps itself (compared by id), so editing an
// appointment does not conflict with its own prior version.
func Overlaps(a, b Slot) bool {
	if a.ID != uuid.Nil && a.ID == b.ID {
		return false
	}
	if !SameDate(a.Date, b.Date) {
		return false
	}
	return a.StartMinutes < b.EndMinutes() && b.StartMinutes < a.EndMinutes()
}

// FindConflict returns the first existing slot that overlaps the
// candidate, or nil. Conflicts are advisory: the caller surfaces the
// overlapping booking to a human who confirms the override, it never
// blocks the write.
func FindConflict(candidate Slot, existing []Slot) *Slot {
	for i := range existing {
		if Overlaps(candidate, existing[i]) {
			return &existing[i]
		}
	}
	return nil
}

// MinutesSinceMidnight converts an HH:MM wall-clock pair.
func MinutesSinceMidnight(hour, minute int) int {
	return hour*60 + minute
}
