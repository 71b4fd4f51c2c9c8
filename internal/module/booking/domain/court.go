package domain

import (
	"strings"
	"time"
)

type CourtStatus string

const (
	CourtActive      CourtStatus = "active"
	CourtInactive    CourtStatus = "inactive"
	CourtMaintenance CourtStatus = "maintenance"
)

type Sport string

const (
	SportBasketball  Sport = "basketball"
	SportTennis      Sport = "tennis"
	SportFootball    Sport = "football"
	SportCricket     Sport = "cricket"
	SportBadminton   Sport = "badminton"
	SportVolleyball  Sport = "volleyball"
	SportTableTennis Sport = "table-tennis"
	SportSquash      Sport = "squash"
	SportSwimming    Sport = "swimming"
	SportGym         Sport = "gym"
)

// CourtPricing holds the multipliers used by the pricing calculator.
type CourtPricing struct {
	BasePrice          float64 `json:"base_price"`
	Currency           string  `json:"currency"`
	PeakHourMultiplier float64 `json:"peak_hour_multiplier"`
	WeekendMultiplier  float64 `json:"weekend_multiplier"`
	HolidayMultiplier  float64 `json:"holiday_multiplier"`
}

// Court is a read-only catalog snapshot taken for the duration of one call.
type Court struct {
	ID               string          `json:"id"`
	FacilityID       string          `json:"facility_id"`
	Name             string          `json:"name"`
	Sport            Sport           `json:"sport"`
	Pricing          CourtPricing    `json:"pricing"`
	Status           CourtStatus     `json:"status"`
	UnderMaintenance bool            `json:"under_maintenance"`
	OpenDays         map[string]bool `json:"open_days"`
}

// IsOpenOn treats a weekday missing from OpenDays as open, matching the
// catalog default. Keys are lower-case English weekday names.
func (c Court) IsOpenOn(day time.Weekday) bool {
	open, ok := c.OpenDays[strings.ToLower(day.String())]
	if !ok {
		return true
	}
	return open
}

type Facility struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}

// WithDefaults fills multipliers the catalog left at zero.
func (p CourtPricing) WithDefaults() CourtPricing {
	if p.Currency == "" {
		p.Currency = "INR"
	}
	if p.PeakHourMultiplier == 0 {
		p.PeakHourMultiplier = 1.5
	}
	if p.WeekendMultiplier == 0 {
		p.WeekendMultiplier = 1.2
	}
	if p.HolidayMultiplier == 0 {
		p.HolidayMultiplier = 1.3
	}
	return p
}
