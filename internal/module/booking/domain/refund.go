package domain

import "time"

const (
	FullRefundHours    = 24
	PartialRefundHours = 2
)

// RefundFraction maps hours remaining before the slot starts to the share
// of the total price that is returned.
func RefundFraction(hoursUntilStart float64) float64 {
	switch {
	case hoursUntilStart >= FullRefundHours:
		return 1
	case hoursUntilStart >= PartialRefundHours:
		return 0.5
	default:
		return 0
	}
}

// HoursUntil must be given the same now as the deadline check of the
// cancellation it belongs to.
func HoursUntil(start, now time.Time) float64 {
	return start.Sub(now).Hours()
}

func RefundAmount(total float64, currency string, hoursUntilStart float64) float64 {
	return RoundMoney(total*RefundFraction(hoursUntilStart), currency)
}
