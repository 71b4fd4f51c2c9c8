package entity

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"court-booking-service/internal/module/booking/domain"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Booking mirrors one row of the bookings table. Start and end are stored
// both as HH:MM text and as minutes since midnight; the minute columns
// back the exclusion constraint.
type Booking struct {
	ID              uuid.UUID      `db:"id"`
	UserID          string         `db:"user_id"`
	FacilityID      string         `db:"facility_id"`
	CourtID         string         `db:"court_id"`
	BookingDate     time.Time      `db:"booking_date"`
	StartTime       string         `db:"start_time"`
	EndTime         string         `db:"end_time"`
	StartMinute     int            `db:"start_minute"`
	EndMinute       int            `db:"end_minute"`
	Duration        float64        `db:"duration_hours"`
	Status          domain.Status  `db:"status"`
	SpecialRequests sql.NullString `db:"special_requests"`

	BasePrice          float64     `db:"base_price"`
	TotalPrice         float64     `db:"total_price"`
	Currency           string      `db:"currency"`
	AppliedMultipliers Multipliers `db:"applied_multipliers"`

	PaymentMethod   domain.PaymentMethod `db:"payment_method"`
	PaymentStatus   domain.PaymentStatus `db:"payment_status"`
	PaymentAmount   float64              `db:"payment_amount"`
	TransactionID   sql.NullString       `db:"transaction_id"`
	PaidAt          sql.NullTime         `db:"paid_at"`
	PaymentCurrency string               `db:"payment_currency"`

	IsCancelled        bool            `db:"is_cancelled"`
	CancelledBy        sql.NullString  `db:"cancelled_by"`
	CancelledAt        sql.NullTime    `db:"cancelled_at"`
	CancellationReason sql.NullString  `db:"cancellation_reason"`
	RefundAmount       sql.NullFloat64 `db:"refund_amount"`
	RefundStatus       sql.NullString  `db:"refund_status"`

	CheckedInAt  sql.NullTime `db:"checked_in_at"`
	CheckedOutAt sql.NullTime `db:"checked_out_at"`

	Version   int          `db:"version"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt sql.NullTime `db:"updated_at"`
}

// SlotInterval is the projection FindOverlapping returns.
type SlotInterval struct {
	ID          uuid.UUID `db:"id"`
	StartMinute int       `db:"start_minute"`
	EndMinute   int       `db:"end_minute"`
}

func (s SlotInterval) ToSlot() domain.Slot {
	return domain.Slot{
		BookingID: s.ID.String(),
		Start:     domain.TimeOfDay{Hour: s.StartMinute / 60, Minute: s.StartMinute % 60},
		End:       domain.TimeOfDay{Hour: s.EndMinute / 60, Minute: s.EndMinute % 60},
	}
}

// Multipliers is stored as JSONB.
type Multipliers []domain.AppliedMultiplier

func (m Multipliers) Value() (driver.Value, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m)
}

func (m *Multipliers) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = Multipliers{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for applied_multipliers", src)
	}
	return json.Unmarshal(data, m)
}

// Transition is the compare-and-swap patch applied by UpdateBooking.
// The update only lands when the row still has ExpectedStatus and
// ExpectedVersion.
type Transition struct {
	ExpectedStatus  domain.Status
	ExpectedVersion int
	Booking         *Booking
}
