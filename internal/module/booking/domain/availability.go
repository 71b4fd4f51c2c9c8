package domain

import (
	"court-booking-service/internal/pkg/errors"
	"fmt"
	"time"
)

// Slot is an existing reservation as seen by the availability checker.
type Slot struct {
	BookingID string
	Start     TimeOfDay
	End       TimeOfDay
}

// CheckCourtOpen runs before any overlap scan: an inactive, maintained or
// closed court is unavailable regardless of its bookings.
func CheckCourtOpen(court Court, date time.Time) error {
	if court.Status != CourtActive {
		return errors.ResourceUnavailable(fmt.Sprintf("court %s is %s", court.ID, court.Status))
	}
	if court.UnderMaintenance {
		return errors.ResourceUnavailable(fmt.Sprintf("court %s is under maintenance", court.ID))
	}
	if !court.IsOpenOn(date.Weekday()) {
		return errors.ResourceUnavailable(fmt.Sprintf("court %s is closed on %s", court.ID, date.Weekday()))
	}
	return nil
}

// FindConflict returns the first existing slot overlapping [start, end).
// Callers pass only slots that still hold the court.
func FindConflict(existing []Slot, start, end TimeOfDay) (Slot, bool) {
	for _, s := range existing {
		if IntervalsOverlap(start, end, s.Start, s.End) {
			return s, true
		}
	}
	return Slot{}, false
}

// CheckAvailability is the full admission predicate for one slot.
func CheckAvailability(court Court, date time.Time, start, end TimeOfDay, existing []Slot) error {
	if err := CheckCourtOpen(court, date); err != nil {
		return err
	}
	if s, ok := FindConflict(existing, start, end); ok {
		return errors.SlotConflict(s.BookingID)
	}
	return nil
}
