package domain

import (
	"court-booking-service/internal/pkg/errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	MultiplierWeekend  = "weekend"
	MultiplierPeakHour = "peak_hour"
	MultiplierHoliday  = "holiday"

	DefaultPeakStartHour = 18
	DefaultPeakEndHour   = 21
)

// zeroDecimalCurrencies are priced in whole units.
var zeroDecimalCurrencies = map[string]bool{
	"INR": true,
	"JPY": true,
	"IDR": true,
	"KRW": true,
}

type AppliedMultiplier struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type Quote struct {
	BasePrice     float64             `json:"base_price"`
	TotalPrice    float64             `json:"total_price"`
	Currency      string              `json:"currency"`
	DurationHours float64             `json:"duration_hours"`
	Multipliers   []AppliedMultiplier `json:"applied_multipliers"`
}

type HolidayCalendar interface {
	IsHoliday(date time.Time) bool
}

// StaticHolidays is a fixed set of calendar days keyed by YYYY-MM-DD.
type StaticHolidays map[string]struct{}

func NewStaticHolidays(dates []string) (StaticHolidays, error) {
	h := make(StaticHolidays, len(dates))
	for _, d := range dates {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, d); err != nil {
			return nil, errors.InvalidFormat(fmt.Sprintf("invalid holiday date %q", d))
		}
		h[d] = struct{}{}
	}
	return h, nil
}

func (h StaticHolidays) IsHoliday(date time.Time) bool {
	_, ok := h[date.Format(DateLayout)]
	return ok
}

type PriceInput struct {
	Pricing CourtPricing
	Date    time.Time
	Start   TimeOfDay
	End     TimeOfDay
}

type Calculator struct {
	PeakStartHour int
	PeakEndHour   int
	Holidays      HolidayCalendar
}

func NewCalculator(holidays HolidayCalendar) *Calculator {
	return &Calculator{
		PeakStartHour: DefaultPeakStartHour,
		PeakEndHour:   DefaultPeakEndHour,
		Holidays:      holidays,
	}
}

// Quote applies weekend, peak-hour and holiday multipliers in that order.
// Only the start hour decides peak pricing: a 20:00-22:00 slot is priced
// as fully peak.
func (c *Calculator) Quote(in PriceInput) (Quote, error) {
	duration, err := DurationHours(in.Start, in.End)
	if err != nil {
		return Quote{}, err
	}
	if in.Pricing.BasePrice < 0 {
		return Quote{}, errors.InvalidRange("base price must not be negative")
	}

	rate := in.Pricing.BasePrice
	applied := []AppliedMultiplier{}

	if wd := in.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		rate *= in.Pricing.WeekendMultiplier
		applied = append(applied, AppliedMultiplier{Name: MultiplierWeekend, Value: in.Pricing.WeekendMultiplier})
	}

	if h := in.Start.Hour; h >= c.PeakStartHour && h <= c.PeakEndHour {
		rate *= in.Pricing.PeakHourMultiplier
		applied = append(applied, AppliedMultiplier{Name: MultiplierPeakHour, Value: in.Pricing.PeakHourMultiplier})
	}

	if c.Holidays != nil && c.Holidays.IsHoliday(in.Date) {
		rate *= in.Pricing.HolidayMultiplier
		applied = append(applied, AppliedMultiplier{Name: MultiplierHoliday, Value: in.Pricing.HolidayMultiplier})
	}

	return Quote{
		BasePrice:     in.Pricing.BasePrice,
		TotalPrice:    RoundMoney(rate*duration, in.Pricing.Currency),
		Currency:      in.Pricing.Currency,
		DurationHours: duration,
		Multipliers:   applied,
	}, nil
}

// RoundMoney rounds to the currency's minor unit.
func RoundMoney(amount float64, currency string) float64 {
	if zeroDecimalCurrencies[strings.ToUpper(currency)] {
		return math.Round(amount)
	}
	return math.Round(amount*100) / 100
}
