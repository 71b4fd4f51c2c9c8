package event

import "time"

const (
	TopicBookingCreated   = "booking_created"
	TopicBookingCancelled = "booking_cancelled"
	TopicBookingCompleted = "booking_completed"
	TopicBookingNoShow    = "booking_no_show"

	TopicCatalogCourtUpdated    = "catalog_court_updated"
	TopicCatalogFacilityUpdated = "catalog_facility_updated"
)

type BookingCreated struct {
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	FacilityID string    `json:"facility_id"`
	CourtID    string    `json:"court_id"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	TotalPrice float64   `json:"total_price"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

type BookingCancelled struct {
	BookingID    string    `json:"booking_id"`
	UserID       string    `json:"user_id"`
	CourtID      string    `json:"court_id"`
	CancelledBy  string    `json:"cancelled_by"`
	Reason       string    `json:"reason"`
	RefundAmount float64   `json:"refund_amount"`
	Currency     string    `json:"currency"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// BookingFinished is published for both completed and no-show bookings so
// the catalog can maintain its aggregates.
type BookingFinished struct {
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	FacilityID string    `json:"facility_id"`
	CourtID    string    `json:"court_id"`
	Status     string    `json:"status"`
	MarkedBy   string    `json:"marked_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CatalogUpdated is consumed from the catalog to evict cached snapshots.
type CatalogUpdated struct {
	ID string `json:"id" validate:"required"`
}
