package usecases_test

import (
	"context"
	"court-booking-service/internal/module/booking/domain"
	"court-booking-service/internal/module/booking/models/entity"
	"court-booking-service/internal/module/booking/models/request"
	"court-booking-service/internal/module/booking/usecases"
	"court-booking-service/internal/pkg/errors"
	"court-booking-service/internal/pkg/lock"
	"court-booking-service/internal/pkg/payment"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// memoryRepo keeps bookings in a map. Unlike postgres it has no exclusion
// constraint, so only the slot lock keeps admissions apart.
type memoryRepo struct {
	mu       sync.Mutex
	bookings map[string]entity.Booking
	locker   lock.Locker
	court    domain.Court
	facility domain.Facility
	tasks    []string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		bookings: map[string]entity.Booking{},
		locker:   lock.NewLocalLocker(),
		court:    activeCourt(),
		facility: facility,
	}
}

func (r *memoryRepo) FindCourtByID(ctx context.Context, courtID string) (domain.Court, error) {
	if courtID != r.court.ID {
		return domain.Court{}, errors.NotFound("court not found")
	}
	return r.court, nil
}

func (r *memoryRepo) FindFacilityByID(ctx context.Context, facilityID string) (domain.Facility, error) {
	if facilityID != r.facility.ID {
		return domain.Facility{}, errors.NotFound("facility not found")
	}
	return r.facility, nil
}

func (r *memoryRepo) EvictCourt(ctx context.Context, courtID string) error       { return nil }
func (r *memoryRepo) EvictFacility(ctx context.Context, facilityID string) error { return nil }

func (r *memoryRepo) LockSlot(ctx context.Context, courtID string, date time.Time) (lock.UnlockFunc, error) {
	return r.locker.Lock(ctx, fmt.Sprintf("%s:%s", courtID, date.Format(domain.DateLayout)))
}

func (r *memoryRepo) SetTaskScheduler(ctx context.Context, taskType string, payload []byte, opts ...asynq.Option) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, taskType)
	return taskType, nil
}

func (r *memoryRepo) FindOverlapping(ctx context.Context, courtID string, date time.Time, start, end domain.TimeOfDay) ([]entity.SlotInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.SlotInterval
	for _, b := range r.bookings {
		if b.CourtID != courtID || b.BookingDate.Format(domain.DateLayout) != date.Format(domain.DateLayout) || !b.Status.IsActive() {
			continue
		}
		s := entity.SlotInterval{ID: b.ID, StartMinute: b.StartMinute, EndMinute: b.EndMinute}
		slot := s.ToSlot()
		if domain.IntervalsOverlap(start, end, slot.Start, slot.End) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartMinute < out[j].StartMinute })
	return out, nil
}

func (r *memoryRepo) InsertBooking(ctx context.Context, b *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID.String()] = *b
	return nil
}

func (r *memoryRepo) FindBookingByID(ctx context.Context, bookingID string) (entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return entity.Booking{}, errors.NotFound("booking not found")
	}
	return b, nil
}

func (r *memoryRepo) UpdateBooking(ctx context.Context, t entity.Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.bookings[t.Booking.ID.String()]
	if !ok || cur.Status != t.ExpectedStatus || cur.Version != t.ExpectedVersion {
		return errors.InvalidState("booking was modified concurrently")
	}
	t.Booking.Version = t.ExpectedVersion + 1
	r.bookings[t.Booking.ID.String()] = *t.Booking
	return nil
}

func (r *memoryRepo) UpdateRefundStatus(ctx context.Context, bookingID string, from, to domain.RefundStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok || b.RefundStatus.String != string(from) {
		return errors.InvalidState("refund is not " + string(from))
	}
	b.RefundStatus.String = string(to)
	r.bookings[bookingID] = b
	return nil
}

func (r *memoryRepo) FindBookingsByUserID(ctx context.Context, userID string) ([]entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepo) FindElapsedBookings(ctx context.Context, date time.Time, minute int, limit int) ([]entity.Booking, error) {
	return nil, nil
}

func newAdmissionUsecase(repo *memoryRepo) (usecases.Usecase, *fixedClock) {
	c := &fixedClock{t: now}
	return usecases.New(repo, logMock, NewMockPublisher(), payment.NewSimulated(c), c, nil, newConfig()), c
}

func createPayload(start, end string) *request.CreateBooking {
	return &request.CreateBooking{
		FacilityID:    "facility-1",
		CourtID:       "court-1",
		Date:          "2026-10-21",
		StartTime:     start,
		EndTime:       end,
		PaymentMethod: "online",
	}
}

func TestConcurrentAdmissionAdmitsOne(t *testing.T) {
	setup()
	defer teardown()

	repo := newMemoryRepo()
	u, _ := newAdmissionUsecase(repo)

	const workers = 20
	var (
		mu        sync.Mutex
		admitted  int
		conflicts int
	)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			// every request overlaps 19:00-20:00
			start := []string{"18:00", "18:30", "19:00", "19:30"}[i%4]
			actor := domain.Actor{ID: fmt.Sprintf("user-%d", i), Role: domain.RoleUser}
			_, err := u.CreateBooking(context.Background(), actor, createPayload(start, "20:00"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				admitted++
			case errors.Is(err, errors.ErrSlotConflict):
				conflicts++
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 1, admitted)
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, repo.bookings, 1)
}

func TestBackToBackSlotsBothAdmitted(t *testing.T) {
	setup()
	defer teardown()

	repo := newMemoryRepo()
	u, _ := newAdmissionUsecase(repo)

	_, err := u.CreateBooking(context.Background(), userActor, createPayload("10:00", "11:00"))
	require.NoError(t, err)
	_, err = u.CreateBooking(context.Background(), otherUser, createPayload("11:00", "12:00"))
	require.NoError(t, err)
	_, err = u.CreateBooking(context.Background(), otherUser, createPayload("10:59", "11:30"))
	assert.ErrorIs(t, err, errors.ErrSlotConflict)
}

func TestReadAfterWriteAndRelease(t *testing.T) {
	setup()
	defer teardown()

	repo := newMemoryRepo()
	u, _ := newAdmissionUsecase(repo)
	ctx := context.Background()

	created, err := u.CreateBooking(ctx, userActor, createPayload("19:00", "21:00"))
	require.NoError(t, err)

	got, err := u.GetBooking(ctx, created.ID, userActor)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	mine, err := u.ShowBookings(ctx, userActor)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)

	// 2026-10-21 19:00 is more than 24h after now
	cancelled, err := u.CancelBooking(ctx, created.ID, userActor, "rain")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Equal(t, created.Pricing.TotalPrice, cancelled.Cancellation.RefundAmount)
	assert.Equal(t, []string{"settle_refund"}, repo.tasks)

	require.NoError(t, u.SettleRefund(ctx, created.ID, false))
	settled, err := u.GetBooking(ctx, created.ID, userActor)
	require.NoError(t, err)
	assert.Equal(t, "completed", settled.Cancellation.RefundStatus)

	// a cancelled booking no longer holds the court
	_, err = u.CreateBooking(ctx, otherUser, createPayload("19:00", "21:00"))
	assert.NoError(t, err)
}

func TestConcurrentCancelSucceedsOnce(t *testing.T) {
	setup()
	defer teardown()

	repo := newMemoryRepo()
	u, _ := newAdmissionUsecase(repo)
	ctx := context.Background()

	created, err := u.CreateBooking(ctx, userActor, createPayload("19:00", "21:00"))
	require.NoError(t, err)

	const workers = 10
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := u.CancelBooking(ctx, created.ID, adminActor, "")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, invalid int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, errors.ErrInvalidState):
			invalid++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, invalid)
}

func TestTerminalStatesAreFinal(t *testing.T) {
	setup()
	defer teardown()

	repo := newMemoryRepo()
	u, c := newAdmissionUsecase(repo)
	ctx := context.Background()

	created, err := u.CreateBooking(ctx, userActor, createPayload("10:00", "11:00"))
	require.NoError(t, err)

	c.Set(time.Date(2026, 10, 21, 12, 0, 0, 0, time.UTC))
	_, err = u.MarkCompleted(ctx, created.ID, ownerActor)
	require.NoError(t, err)

	_, err = u.MarkNoShow(ctx, created.ID, ownerActor)
	assert.ErrorIs(t, err, errors.ErrInvalidState)
	_, err = u.CancelBooking(ctx, created.ID, adminActor, "")
	assert.ErrorIs(t, err, errors.ErrInvalidState)
}

func TestLifecycleWithoutPublisher(t *testing.T) {
	setup()
	defer teardown()

	repo := newMemoryRepo()
	c := &fixedClock{t: now}
	u := usecases.New(repo, logMock, nil, payment.NewSimulated(c), c, nil, newConfig())
	ctx := context.Background()

	created, err := u.CreateBooking(ctx, userActor, createPayload("10:00", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, "confirmed", created.Status)

	cancelled, err := u.CancelBooking(ctx, created.ID, userActor, "")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
}
