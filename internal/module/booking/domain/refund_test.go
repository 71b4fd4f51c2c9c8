package domain_test

import (
	"court-booking-service/internal/module/booking/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefundFraction(t *testing.T) {
	testCases := []struct {
		hours float64
		want  float64
	}{
		{hours: 30, want: 1},
		{hours: 24, want: 1},
		{hours: 23.99, want: 0.5},
		{hours: 10, want: 0.5},
		{hours: 2, want: 0.5},
		{hours: 1.99, want: 0},
		{hours: 1, want: 0},
		{hours: -3, want: 0},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, domain.RefundFraction(tc.hours), "hours=%v", tc.hours)
	}
}

func TestRefundAmount(t *testing.T) {
	now := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 2880.0, domain.RefundAmount(2880, "INR", domain.HoursUntil(now.Add(30*time.Hour), now)))
	assert.Equal(t, 1440.0, domain.RefundAmount(2880, "INR", domain.HoursUntil(now.Add(10*time.Hour), now)))
	assert.Equal(t, 0.0, domain.RefundAmount(2880, "INR", domain.HoursUntil(now.Add(time.Hour), now)))
	assert.Equal(t, 12.5, domain.RefundAmount(25, "USD", 5))
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, domain.CanTransition(domain.StatusPending, domain.StatusConfirmed))
	assert.True(t, domain.CanTransition(domain.StatusConfirmed, domain.StatusCancelled))
	assert.True(t, domain.CanTransition(domain.StatusConfirmed, domain.StatusCompleted))
	assert.True(t, domain.CanTransition(domain.StatusConfirmed, domain.StatusNoShow))
	assert.False(t, domain.CanTransition(domain.StatusPending, domain.StatusCompleted))

	terminal := []domain.Status{domain.StatusCancelled, domain.StatusCompleted, domain.StatusNoShow}
	all := []domain.Status{domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted, domain.StatusNoShow}
	for _, from := range terminal {
		assert.True(t, from.IsTerminal())
		for _, to := range all {
			assert.False(t, domain.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestActorPermissions(t *testing.T) {
	user := domain.Actor{ID: "u-1", Role: domain.RoleUser}
	other := domain.Actor{ID: "u-2", Role: domain.RoleUser}
	owner := domain.Actor{ID: "o-1", Role: domain.RoleFacilityOwner}
	otherOwner := domain.Actor{ID: "o-2", Role: domain.RoleFacilityOwner}
	admin := domain.Actor{ID: "a-1", Role: domain.RoleAdmin}

	assert.True(t, user.CanCancel("u-1", "o-1"))
	assert.False(t, other.CanCancel("u-1", "o-1"))
	assert.True(t, owner.CanCancel("u-1", "o-1"))
	assert.False(t, otherOwner.CanCancel("u-1", "o-1"))
	assert.True(t, admin.CanCancel("u-1", "o-1"))

	assert.False(t, user.CanManage("o-1"))
	assert.True(t, owner.CanManage("o-1"))
	assert.False(t, otherOwner.CanManage("o-1"))
	assert.True(t, admin.CanManage("o-1"))

	role, err := domain.ParseRole("facility_owner")
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleFacilityOwner, role)
	_, err = domain.ParseRole("superuser")
	assert.Error(t, err)
}
