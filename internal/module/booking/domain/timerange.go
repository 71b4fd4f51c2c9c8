package domain

import (
	"court-booking-service/internal/pkg/errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// TimeOfDay is a wall-clock time on an unspecified calendar day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func fromMinutes(m int) TimeOfDay {
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// ParseTime accepts H:MM or HH:MM in the 00:00-23:59 range.
func ParseTime(s string) (TimeOfDay, error) {
	if !timePattern.MatchString(s) {
		return TimeOfDay{}, errors.InvalidFormat(fmt.Sprintf("invalid time %q, expected HH:MM", s))
	}
	h, m, _ := strings.Cut(s, ":")
	hour, _ := strconv.Atoi(h)
	minute, _ := strconv.Atoi(m)
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// DurationHours returns end-start in hours for two times on the same day.
func DurationHours(start, end TimeOfDay) (float64, error) {
	if end.Minutes() <= start.Minutes() {
		return 0, errors.InvalidRange(fmt.Sprintf("end time %s must be after start time %s", end, start))
	}
	return float64(end.Minutes()-start.Minutes()) / 60, nil
}

// IntervalsOverlap treats both intervals as half-open [start, end), so
// back-to-back slots do not overlap.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart.Minutes() < bEnd.Minutes() && aEnd.Minutes() > bStart.Minutes()
}

// AddHours adds a fractional number of hours, rounded to the nearest
// minute. Results past 23:59 fail instead of wrapping to the next day.
func AddHours(t TimeOfDay, hours float64) (TimeOfDay, error) {
	if hours <= 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return TimeOfDay{}, errors.InvalidRange(fmt.Sprintf("duration must be positive, got %v", hours))
	}
	end := t.Minutes() + int(math.Round(hours*60))
	if end > minutesPerDay-1 {
		return TimeOfDay{}, errors.CrossesMidnight(fmt.Sprintf("%s plus %vh crosses midnight", t, hours))
	}
	return fromMinutes(end), nil
}

// ValidateSlot checks an explicit start/end pair. An end before the start
// can only mean the slot wraps past midnight, which is rejected rather
// than split across two dates.
func ValidateSlot(start, end TimeOfDay) error {
	switch {
	case end.Minutes() < start.Minutes():
		return errors.CrossesMidnight(fmt.Sprintf("slot %s-%s crosses midnight", start, end))
	case end.Minutes() == start.Minutes():
		return errors.InvalidRange(fmt.Sprintf("slot %s-%s is empty", start, end))
	}
	return nil
}
