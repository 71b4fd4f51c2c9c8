package payment

import (
	"context"
	"court-booking-service/internal/pkg/errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Charge struct {
	BookingID string
	UserID    string
	Amount    float64
	Currency  string
	Method    string
}

type Receipt struct {
	TransactionID string
	Amount        float64
	Currency      string
	PaidAt        time.Time
}

// Processor charges and refunds bookings. Refund with an amount of zero is
// a no-op that still succeeds.
type Processor interface {
	Charge(ctx context.Context, c Charge) (Receipt, error)
	Refund(ctx context.Context, transactionID string, amount float64, currency string) error
}

type clock interface {
	Now() time.Time
}

// Simulated always succeeds and issues SIM- prefixed transaction ids.
type Simulated struct {
	clock clock
}

func NewSimulated(c clock) *Simulated {
	return &Simulated{clock: c}
}

func (s *Simulated) Charge(ctx context.Context, c Charge) (Receipt, error) {
	if c.Amount < 0 {
		return Receipt{}, errors.BadRequest("charge amount must not be negative")
	}
	now := s.clock.Now()
	return Receipt{
		TransactionID: fmt.Sprintf("SIM-%d-%s", now.UnixMilli(), strings.SplitN(uuid.NewString(), "-", 2)[0]),
		Amount:        c.Amount,
		Currency:      c.Currency,
		PaidAt:        now,
	}, nil
}

func (s *Simulated) Refund(ctx context.Context, transactionID string, amount float64, currency string) error {
	if amount < 0 {
		return errors.BadRequest("refund amount must not be negative")
	}
	if amount > 0 && transactionID == "" {
		return errors.BadRequest("refund requires a transaction id")
	}
	return nil
}
