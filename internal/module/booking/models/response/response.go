package response

import "court-booking-service/internal/module/booking/domain"

type Pricing struct {
	BasePrice          float64                    `json:"base_price"`
	TotalPrice         float64                    `json:"total_price"`
	Currency           string                     `json:"currency"`
	AppliedMultipliers []domain.AppliedMultiplier `json:"applied_multipliers"`
}

type Payment struct {
	Method        string  `json:"method"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	TransactionID string  `json:"transaction_id,omitempty"`
	PaidAt        string  `json:"paid_at,omitempty"`
}

type Cancellation struct {
	CancelledBy  string  `json:"cancelled_by"`
	CancelledAt  string  `json:"cancelled_at"`
	Reason       string  `json:"reason"`
	RefundAmount float64 `json:"refund_amount"`
	RefundStatus string  `json:"refund_status"`
}

type Booking struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	FacilityID      string        `json:"facility_id"`
	CourtID         string        `json:"court_id"`
	Date            string        `json:"date"`
	StartTime       string        `json:"start_time"`
	EndTime         string        `json:"end_time"`
	DurationHours   float64       `json:"duration_hours"`
	Status          string        `json:"status"`
	Pricing         Pricing       `json:"pricing"`
	Payment         Payment       `json:"payment"`
	Cancellation    *Cancellation `json:"cancellation,omitempty"`
	SpecialRequests string        `json:"special_requests,omitempty"`
	CheckedInAt     string        `json:"checked_in_at,omitempty"`
	CheckedOutAt    string        `json:"checked_out_at,omitempty"`
	CreatedAt       string        `json:"created_at"`
}

type Quote struct {
	CourtID       string  `json:"court_id"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours"`
	Pricing       Pricing `json:"pricing"`
}

type BusySlot struct {
	BookingID string `json:"booking_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type CourtSchedule struct {
	CourtID string     `json:"court_id"`
	Date    string     `json:"date"`
	Open    bool       `json:"open"`
	Reason  string     `json:"reason,omitempty"`
	Busy    []BusySlot `json:"busy"`
}

type SweepResult struct {
	Completed int `json:"completed"`
	NoShow    int `json:"no_show"`
}
