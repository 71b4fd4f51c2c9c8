package request

// CreateBooking takes either an explicit end time or a duration from which
// the end time is derived.
type CreateBooking struct {
	FacilityID      string  `json:"facility_id" validate:"required"`
	CourtID         string  `json:"court_id" validate:"required"`
	Date            string  `json:"date" validate:"required"`
	StartTime       string  `json:"start_time" validate:"required"`
	EndTime         string  `json:"end_time" validate:"required_without=DurationHours"`
	DurationHours   float64 `json:"duration_hours" validate:"omitempty,gte=0.5,lte=6"`
	PaymentMethod   string  `json:"payment_method" validate:"required,oneof=credit_card debit_card paypal cash online"`
	SpecialRequests string  `json:"special_requests" validate:"max=500"`
}

type QuotePrice struct {
	CourtID       string  `json:"court_id" validate:"required"`
	Date          string  `json:"date" validate:"required"`
	StartTime     string  `json:"start_time" validate:"required"`
	EndTime       string  `json:"end_time" validate:"required_without=DurationHours"`
	DurationHours float64 `json:"duration_hours" validate:"omitempty,gte=0.5,lte=6"`
}

type CancelBooking struct {
	Reason string `json:"reason" validate:"max=500"`
}

type CourtSchedule struct {
	CourtID string `validate:"required"`
	Date    string `validate:"required"`
}

type PoisonedQueue struct {
	TopicTarget string      `json:"topic_target" validate:"required"`
	ErrorMsg    string      `json:"error_msg" validate:"required"`
	Payload     interface{} `json:"payload" validate:"required"`
}

type SettleRefund struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

type SweepElapsed struct {
	BatchSize int `json:"batch_size" validate:"omitempty,gt=0"`
}
