package usecases

import (
	"context"
	"court-booking-service/config"
	"court-booking-service/internal/module/booking/domain"
	"court-booking-service/internal/module/booking/models/entity"
	"court-booking-service/internal/module/booking/models/event"
	"court-booking-service/internal/module/booking/models/request"
	"court-booking-service/internal/module/booking/models/response"
	"court-booking-service/internal/module/booking/repositories"
	"court-booking-service/internal/pkg/errors"
	"court-booking-service/internal/pkg/log"
	"court-booking-service/internal/pkg/payment"
	"court-booking-service/internal/pkg/scheduler"
	"database/sql"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.elastic.co/apm"
)

const (
	MinDurationHours = 0.5
	MaxDurationHours = 6

	defaultCancelReason = "Cancelled by user"
	settleRefundRetries = 5
	timestampLayout     = time.RFC3339
)

type usecase struct {
	repo       repositories.Repositories
	log        log.Logger
	publisher  message.Publisher
	processor  payment.Processor
	clock      domain.Clock
	calculator *domain.Calculator
	cfg        *config.BookingConfig
	loc        *time.Location
}

type Usecase interface {
	// http
	CreateBooking(ctx context.Context, actor domain.Actor, payload *request.CreateBooking) (response.Booking, error)
	CancelBooking(ctx context.Context, bookingID string, actor domain.Actor, reason string) (response.Booking, error)
	MarkCompleted(ctx context.Context, bookingID string, actor domain.Actor) (response.Booking, error)
	MarkNoShow(ctx context.Context, bookingID string, actor domain.Actor) (response.Booking, error)
	CheckIn(ctx context.Context, bookingID string, actor domain.Actor) (response.Booking, error)
	CheckOut(ctx context.Context, bookingID string, actor domain.Actor) (response.Booking, error)
	GetBooking(ctx context.Context, bookingID string, actor domain.Actor) (response.Booking, error)
	ShowBookings(ctx context.Context, actor domain.Actor) ([]response.Booking, error)
	QuotePrice(ctx context.Context, payload *request.QuotePrice) (response.Quote, error)
	CourtSchedule(ctx context.Context, courtID, date string) (response.CourtSchedule, error)
	// scheduler
	SettleRefund(ctx context.Context, bookingID string, final bool) error
	SweepElapsed(ctx context.Context, batchSize int) (response.SweepResult, error)
	// message stream
	InvalidateCourt(ctx context.Context, courtID string) error
	InvalidateFacility(ctx context.Context, facilityID string) error
}

func New(
	repo repositories.Repositories,
	log log.Logger,
	publisher message.Publisher,
	processor payment.Processor,
	clock domain.Clock,
	holidays domain.HolidayCalendar,
	cfg *config.BookingConfig,
) Usecase {
	return &usecase{
		repo:       repo,
		log:        log,
		publisher:  publisher,
		processor:  processor,
		clock:      clock,
		calculator: domain.NewCalculator(holidays),
		cfg:        cfg,
		loc:        cfg.Location(),
	}
}

type slot struct {
	date     time.Time
	start    domain.TimeOfDay
	end      domain.TimeOfDay
	duration float64
}

// parseSlot resolves either an explicit end time or a duration into a
// single-day slot.
func (u *usecase) parseSlot(date, startTime, endTime string, durationHours float64) (slot, error) {
	d, err := domain.ParseDate(date, u.loc)
	if err != nil {
		return slot{}, err
	}
	start, err := domain.ParseTime(startTime)
	if err != nil {
		return slot{}, err
	}

	var end domain.TimeOfDay
	if endTime != "" {
		if end, err = domain.ParseTime(endTime); err != nil {
			return slot{}, err
		}
		if err = domain.ValidateSlot(start, end); err != nil {
			return slot{}, err
		}
	} else if end, err = domain.AddHours(start, durationHours); err != nil {
		return slot{}, err
	}

	duration, err := domain.DurationHours(start, end)
	if err != nil {
		return slot{}, err
	}
	if duration < MinDurationHours || duration > MaxDurationHours {
		return slot{}, errors.InvalidRange(fmt.Sprintf("duration must be between %v and %v hours, got %v", MinDurationHours, MaxDurationHours, duration))
	}

	return slot{date: d, start: start, end: end, duration: duration}, nil
}

func (u *usecase) CreateBooking(ctx context.Context, actor domain.Actor, payload *request.CreateBooking) (response.Booking, error) {
	span, ctx := apm.StartSpan(ctx, "CreateBooking", "usecase")
	defer span.End()

	s, err := u.parseSlot(payload.Date, payload.StartTime, payload.EndTime, payload.DurationHours)
	if err != nil {
		return response.Booking{}, err
	}

	now := u.clock.Now()
	if !domain.At(s.date, s.start, u.loc).After(now) {
		return response.Booking{}, errors.InvalidRange(fmt.Sprintf("slot %s %s has already started", payload.Date, s.start))
	}

	court, err := u.repo.FindCourtByID(ctx, payload.CourtID)
	if err != nil {
		return response.Booking{}, err
	}
	if court.FacilityID != payload.FacilityID {
		return response.Booking{}, errors.NotFound(fmt.Sprintf("court %s not found in facility %s", payload.CourtID, payload.FacilityID))
	}
	if _, err := u.repo.FindFacilityByID(ctx, payload.FacilityID); err != nil {
		return response.Booking{}, err
	}

	unlock, err := u.repo.LockSlot(ctx, court.ID, s.date)
	if err != nil {
		u.log.Error(ctx, "error lock slot", err)
		return response.Booking{}, errors.Wrap(err, "error lock slot")
	}
	defer unlock()

	existing, err := u.repo.FindOverlapping(ctx, court.ID, s.date, s.start, s.end)
	if err != nil {
		return response.Booking{}, err
	}
	if err := domain.CheckAvailability(court, s.date, s.start, s.end, toSlots(existing)); err != nil {
		return response.Booking{}, err
	}

	quote, err := u.calculator.Quote(domain.PriceInput{
		Pricing: court.Pricing,
		Date:    s.date,
		Start:   s.start,
		End:     s.end,
	})
	if err != nil {
		return response.Booking{}, err
	}

	id := uuid.New()
	receipt, err := u.processor.Charge(ctx, payment.Charge{
		BookingID: id.String(),
		UserID:    actor.ID,
		Amount:    quote.TotalPrice,
		Currency:  quote.Currency,
		Method:    payload.PaymentMethod,
	})
	if err != nil {
		u.log.Error(ctx, "error charge booking", err)
		return response.Booking{}, errors.Wrap(err, "error charge booking")
	}

	booking := entity.Booking{
		ID:                 id,
		UserID:             actor.ID,
		FacilityID:         court.FacilityID,
		CourtID:            court.ID,
		BookingDate:        domain.CalendarDay(s.date),
		StartTime:          s.start.String(),
		EndTime:            s.end.String(),
		StartMinute:        s.start.Minutes(),
		EndMinute:          s.end.Minutes(),
		Duration:           s.duration,
		Status:             domain.StatusConfirmed,
		SpecialRequests:    nullString(payload.SpecialRequests),
		BasePrice:          quote.BasePrice,
		TotalPrice:         quote.TotalPrice,
		Currency:           quote.Currency,
		AppliedMultipliers: entity.Multipliers(quote.Multipliers),
		PaymentMethod:      domain.PaymentMethod(payload.PaymentMethod),
		PaymentStatus:      domain.PaymentCompleted,
		PaymentAmount:      receipt.Amount,
		TransactionID:      nullString(receipt.TransactionID),
		PaidAt:             sql.NullTime{Time: receipt.PaidAt, Valid: true},
		PaymentCurrency:    receipt.Currency,
		Version:            1,
		CreatedAt:          now,
	}

	if err := u.repo.InsertBooking(ctx, &booking); err != nil {
		if rerr := u.processor.Refund(ctx, receipt.TransactionID, receipt.Amount, receipt.Currency); rerr != nil {
			u.log.Error(ctx, "error void charge after failed insert", rerr)
		}
		return response.Booking{}, u.resolveConflict(ctx, err, court.ID, s)
	}

	u.publish(ctx, event.TopicBookingCreated, event.BookingCreated{
		BookingID:  booking.ID.String(),
		UserID:     booking.UserID,
		FacilityID: booking.FacilityID,
		CourtID:    booking.CourtID,
		Date:       booking.BookingDate.Format(domain.DateLayout),
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		TotalPrice: booking.TotalPrice,
		Currency:   booking.Currency,
		OccurredAt: now,
	})

	return toResponse(booking), nil
}

// resolveConflict names the conflicting booking when storage rejected the
// insert without saying which row it collided with.
func (u *usecase) resolveConflict(ctx context.Context, err error, courtID string, s slot) error {
	var ce *errors.CustomError
	if !errors.As(err, &ce) || ce.Kind != errors.KindSlotConflict || ce.ConflictID != "" {
		return err
	}
	existing, ferr := u.repo.FindOverlapping(ctx, courtID, s.date, s.start, s.end)
	if ferr != nil || len(existing) == 0 {
		return err
	}
	return errors.SlotConflict(existing[0].ID.String())
}

func (u *usecase) CancelBooking(ctx context.Context, bookingID string, actor domain.Actor, reason string) (response.Booking, error) {
	span, ctx := apm.StartSpan(ctx, "CancelBooking", "usecase")
	defer span.End()

	b, err := u.repo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return response.Booking{}, err
	}

	ownerID, err := u.ownerFor(ctx, actor, b.FacilityID)
	if err != nil {
		return response.Booking{}, err
	}
	if !actor.CanCancel(b.UserID, ownerID) {
		return response.Booking{}, errors.Forbidden("not allowed to cancel this booking")
	}
	if !domain.CanTransition(b.Status, domain.StatusCancelled) {
		return response.Booking{}, errors.InvalidState(fmt.Sprintf("booking is %s", b.Status))
	}

	// one read of the clock decides both the deadline and the refund tier
	now := u.clock.Now()
	start := u.startOf(b)
	cutoff := u.cfg.UserCancelCutoff
	if actor.IsStaff(ownerID) {
		cutoff = u.cfg.StaffCancelCutoff
	}
	// the deadline instant itself is already too late
	if !now.Before(start.Add(-cutoff)) {
		return response.Booking{}, errors.DeadlinePassed(fmt.Sprintf("bookings can only be cancelled more than %s before start", cutoff))
	}

	refund := 0.0
	if b.PaymentStatus == domain.PaymentCompleted {
		refund = domain.RefundAmount(b.TotalPrice, b.Currency, domain.HoursUntil(start, now))
	}
	refundStatus := domain.RefundCompleted
	if refund > 0 {
		refundStatus = domain.RefundPending
	}
	if reason == "" {
		reason = defaultCancelReason
	}

	updated := b
	updated.Status = domain.StatusCancelled
	updated.IsCancelled = true
	updated.CancelledBy = nullString(actor.Role.String())
	updated.CancelledAt = sql.NullTime{Time: now, Valid: true}
	updated.CancellationReason = nullString(reason)
	updated.RefundAmount = sql.NullFloat64{Float64: refund, Valid: true}
	updated.RefundStatus = nullString(string(refundStatus))
	updated.UpdatedAt = sql.NullTime{Time: now, Valid: true}
	if b.PaymentStatus == domain.PaymentCompleted {
		updated.PaymentStatus = domain.PaymentRefunded
	}

	if err := u.repo.UpdateBooking(ctx, entity.Transition{
		ExpectedStatus:  b.Status,
		ExpectedVersion: b.Version,
		Booking:         &updated,
	}); err != nil {
		return response.Booking{}, err
	}

	if refund > 0 {
		u.enqueueSettlement(ctx, updated.ID.String())
	}

	u.publish(ctx, event.TopicBookingCancelled, event.BookingCancelled{
		BookingID:    updated.ID.String(),
		UserID:       updated.UserID,
		CourtID:      updated.CourtID,
		CancelledBy:  actor.Role.String(),
		Reason:       reason,
		RefundAmount: refund,
		Currency:     updated.Currency,
		OccurredAt:   now,
	})

	return toResponse(updated), nil
}

func (u *usecase) enqueueSettlement(ctx context.Context, bookingID string) {
	payload, err := json.Marshal(request.SettleRefund{BookingID: bookingID})
	if err != nil {
		u.log.Error(ctx, "error marshal settle refund payload", err)
		return
	}
	_, err = u.repo.SetTaskScheduler(ctx, scheduler.TypeSettleRefund, payload,
		asynq.TaskID(scheduler.TypeSettleRefund+":"+bookingID),
		asynq.MaxRetry(settleRefundRetries),
	)
	if err != nil {
		// the refund stays pending and is visible on the booking
		u.log.Error(ctx, "error enqueue settle refund", err)
	}
}

func (u *usecase) MarkCompleted(ctx context.Context, bookingID string, actor domain.Actor) (response.Booking, error) {
	return u.markFinished(ctx, bookingID, actor, domain.StatusCompleted)
}

func (u *usecase) MarkNoShow(ctx context.Context, bookingID string, actor domain.Actor) (response.Booking, error) {
	return u.markFinished(ctx, bookingID, actor, domain.StatusNoShow)
}

func (u *usecase) markFinished(ctx context.Context, bookingID string, actor domain.Actor, to domain.Status) (response.Booking, error) {
	b, err := u.repo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return response.Booking{}, err
	}
	ownerID, err := u.ownerFor(ctx, actor, b.FacilityID)
	if err != nil {
		return response.Booking{}, err
	}
	if !actor.CanManage(ownerID) {
		return response.Booking{}, errors.Forbidden(fmt.Sprintf("not allowed to mark this booking %s", to))
	}

	updated, err := u.finish(ctx, b, actor, to, u.clock.Now())
	if err != nil {
		return response.Booking{}, err
	}
	return toResponse(updated), nil
}

// finish moves a confirmed booking whose slot has ended to completed or
// no-show. Authorization is the caller's job.
func (u *usecase) finish(ctx context.Context, b entity.Booking, actor domain.Actor, to domain.Status, now time.Time) (entity.Booking, error) {
	if !domain.CanTransition(b.Status, to) {
		return entity.Booking{}, errors.InvalidState(fmt.Sprintf("booking is %s", b.Status))
	}
	if !now.After(u.endOf(b)) {
		return entity.Booking{}, errors.InvalidState("booking has not ended yet")
	}

	updated := b
	updated.Status = to
	updated.UpdatedAt = sql.NullTime{Time: now, Valid: true}
	if err := u.repo.UpdateBooking(ctx, entity.Transition{
		ExpectedStatus:  b.Status,
		ExpectedVersion: b.Version,
		Booking:         &updated,
	}); err != nil {
		return entity.Booking{}, err
	}

	topic := event.TopicBookingCompleted
	if to == domain.StatusNoShow {
		topic = event.TopicBookingNoShow
	}
	u.publish(ctx, topic, event.BookingFinished{
		BookingID:  updated.ID.String(),
		UserID:     updated.UserID,
		FacilityID: updated.FacilityID,
		CourtID:    updated.CourtID,
		Status:     string(to),
		MarkedBy:   actor.Role.String(),
		OccurredAt: now,
	})
	return updated, nil
}

func (u *usecase) CheckIn(ctx context.Context, bookingID string, actor domain.Actor) (response.Booking, error) {
	b, err := u.managedBooking(ctx, bookingID, actor)
	if err != nil {
		return response.Booking{}, err
	}
	if b.CheckedInAt.Valid {
		return response.Booking{}, errors.InvalidState("booking is already checked in")
	}

	now := u.clock.Now()
	opens := u.startOf(b).Add(-u.cfg.CheckInLead)
	if now.Before(opens) || !now.Before(u.endOf(b)) {
		return response.Booking{}, errors.InvalidState(fmt.Sprintf("check-in is open from %s until the slot ends", opens.Format(timestampLayout)))
	}

	updated := b
	updated.CheckedInAt = sql.NullTime{Time: now, Valid: true}
	updated.UpdatedAt = sql.NullTime{Time: now, Valid: true}
	if err := u.repo.UpdateBooking(ctx, entity.Transition{
		ExpectedStatus:  b.Status,
		ExpectedVersion: b.Version,
		Booking:         &updated,
	}); err != nil {
		return response.Booking{}, err
	}
	return toResponse(updated), nil
}

func (u *usecase) CheckOut(ctx context.Context, bookingID string, actor domain.Actor) (response.Booking, error) {
	b, err := u.managedBooking(ctx, bookingID, actor)
	if err != nil {
		return response.Booking{}, err
	}
	if !b.CheckedInAt.Valid {
		return response.Booking{}, errors.InvalidState("booking is not checked in")
	}
	if b.CheckedOutAt.Valid {
		return response.Booking{}, errors.InvalidState("booking is already checked out")
	}

	now := u.clock.Now()
	updated := b
	updated.CheckedOutAt = sql.NullTime{Time: now, Valid: true}
	updated.UpdatedAt = sql.NullTime{Time: now, Valid: true}
	if err := u.repo.UpdateBooking(ctx, entity.Transition{
		ExpectedStatus:  b.Status,
		ExpectedVersion: b.Version,
		Booking:         &updated,
	}); err != nil {
		return response.Booking{}, err
	}
	return toResponse(updated), nil
}

// managedBooking loads a confirmed booking the actor may run check-in or
// check-out on.
func (u *usecase) managedBooking(ctx context.Context, bookingID string, actor domain.Actor) (entity.Booking, error) {
	b, err := u.repo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return entity.Booking{}, err
	}
	ownerID, err := u.ownerFor(ctx, actor, b.FacilityID)
	if err != nil {
		return entity.Booking{}, err
	}
	if !actor.CanManage(ownerID) {
		return entity.Booking{}, errors.Forbidden("not allowed to manage this booking")
	}
	if b.Status != domain.StatusConfirmed {
		return entity.Booking{}, errors.InvalidState(fmt.Sprintf("booking is %s", b.Status))
	}
	return b, nil
}

func (u *usecase) GetBooking(ctx context.Context, bookingID string, actor domain.Actor) (response.Booking, error) {
	b, err := u.repo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return response.Booking{}, err
	}
	ownerID, err := u.ownerFor(ctx, actor, b.FacilityID)
	if err != nil {
		return response.Booking{}, err
	}
	if !actor.CanRead(b.UserID, ownerID) {
		return response.Booking{}, errors.Forbidden("not allowed to read this booking")
	}
	return toResponse(b), nil
}

func (u *usecase) ShowBookings(ctx context.Context, actor domain.Actor) ([]response.Booking, error) {
	bookings, err := u.repo.FindBookingsByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]response.Booking, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toResponse(b))
	}
	return resp, nil
}

func (u *usecase) QuotePrice(ctx context.Context, payload *request.QuotePrice) (response.Quote, error) {
	s, err := u.parseSlot(payload.Date, payload.StartTime, payload.EndTime, payload.DurationHours)
	if err != nil {
		return response.Quote{}, err
	}
	court, err := u.repo.FindCourtByID(ctx, payload.CourtID)
	if err != nil {
		return response.Quote{}, err
	}

	quote, err := u.calculator.Quote(domain.PriceInput{
		Pricing: court.Pricing,
		Date:    s.date,
		Start:   s.start,
		End:     s.end,
	})
	if err != nil {
		return response.Quote{}, err
	}

	return response.Quote{
		CourtID:       court.ID,
		Date:          s.date.Format(domain.DateLayout),
		StartTime:     s.start.String(),
		EndTime:       s.end.String(),
		DurationHours: s.duration,
		Pricing: response.Pricing{
			BasePrice:          quote.BasePrice,
			TotalPrice:         quote.TotalPrice,
			Currency:           quote.Currency,
			AppliedMultipliers: quote.Multipliers,
		},
	}, nil
}

func (u *usecase) CourtSchedule(ctx context.Context, courtID, date string) (response.CourtSchedule, error) {
	d, err := domain.ParseDate(date, u.loc)
	if err != nil {
		return response.CourtSchedule{}, err
	}
	court, err := u.repo.FindCourtByID(ctx, courtID)
	if err != nil {
		return response.CourtSchedule{}, err
	}

	resp := response.CourtSchedule{
		CourtID: court.ID,
		Date:    d.Format(domain.DateLayout),
		Open:    true,
		Busy:    []response.BusySlot{},
	}
	if err := domain.CheckCourtOpen(court, d); err != nil {
		resp.Open = false
		var ce *errors.CustomError
		if errors.As(err, &ce) {
			resp.Reason = ce.Message
		}
	}

	// no slot may end after 23:59, so this window covers the whole day
	existing, err := u.repo.FindOverlapping(ctx, court.ID, d, domain.TimeOfDay{}, domain.TimeOfDay{Hour: 23, Minute: 59})
	if err != nil {
		return response.CourtSchedule{}, err
	}
	for _, s := range toSlots(existing) {
		resp.Busy = append(resp.Busy, response.BusySlot{
			BookingID: s.BookingID,
			StartTime: s.Start.String(),
			EndTime:   s.End.String(),
		})
	}
	return resp, nil
}

// SettleRefund pays out a pending refund. On the final attempt a failure
// is recorded as a failed refund instead of being retried.
func (u *usecase) SettleRefund(ctx context.Context, bookingID string, final bool) error {
	b, err := u.repo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.RefundStatus.String != string(domain.RefundPending) {
		u.log.Info(ctx, fmt.Sprintf("refund for booking %s already settled", bookingID))
		return nil
	}

	if err := u.processor.Refund(ctx, b.TransactionID.String, b.RefundAmount.Float64, b.Currency); err != nil {
		u.log.Error(ctx, "error refund payment", err)
		if final {
			if uerr := u.repo.UpdateRefundStatus(ctx, bookingID, domain.RefundPending, domain.RefundFailed); uerr != nil {
				u.log.Error(ctx, "error mark refund failed", uerr)
			}
		}
		return errors.Wrap(err, "error refund payment")
	}

	err = u.repo.UpdateRefundStatus(ctx, bookingID, domain.RefundPending, domain.RefundCompleted)
	if errors.Is(err, errors.ErrInvalidState) {
		return nil
	}
	return err
}

// SweepElapsed closes confirmed bookings whose end passed more than the
// configured grace period ago: checked-in bookings complete, the rest are
// marked no-show.
func (u *usecase) SweepElapsed(ctx context.Context, batchSize int) (response.SweepResult, error) {
	if batchSize <= 0 {
		batchSize = u.cfg.SweepBatchSize
	}
	now := u.clock.Now()
	cutoff := now.Add(-u.cfg.SweepGrace).In(u.loc)
	minute := cutoff.Hour()*60 + cutoff.Minute()

	bookings, err := u.repo.FindElapsedBookings(ctx, domain.CalendarDay(cutoff), minute, batchSize)
	if err != nil {
		return response.SweepResult{}, err
	}

	var result response.SweepResult
	for _, b := range bookings {
		to := domain.StatusNoShow
		if b.CheckedInAt.Valid {
			to = domain.StatusCompleted
		}

		if _, err := u.finish(ctx, b, domain.SystemActor, to, now); err != nil {
			if errors.Is(err, errors.ErrInvalidState) {
				continue
			}
			return result, err
		}
		if to == domain.StatusCompleted {
			result.Completed++
		} else {
			result.NoShow++
		}
	}

	u.log.Info(ctx, fmt.Sprintf("sweep closed %d completed and %d no-show bookings", result.Completed, result.NoShow))
	return result, nil
}

func (u *usecase) InvalidateCourt(ctx context.Context, courtID string) error {
	return u.repo.EvictCourt(ctx, courtID)
}

func (u *usecase) InvalidateFacility(ctx context.Context, facilityID string) error {
	return u.repo.EvictFacility(ctx, facilityID)
}

// ownerFor returns the facility owner id only when it can change the
// outcome of an authorization check, which is for facility owners.
func (u *usecase) ownerFor(ctx context.Context, actor domain.Actor, facilityID string) (string, error) {
	if actor.Role != domain.RoleFacilityOwner {
		return "", nil
	}
	facility, err := u.repo.FindFacilityByID(ctx, facilityID)
	if errors.Is(err, errors.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return facility.OwnerID, nil
}

func (u *usecase) startOf(b entity.Booking) time.Time {
	return domain.At(b.BookingDate, minuteOfDay(b.StartMinute), u.loc)
}

func (u *usecase) endOf(b entity.Booking) time.Time {
	return domain.At(b.BookingDate, minuteOfDay(b.EndMinute), u.loc)
}

func (u *usecase) publish(ctx context.Context, topic string, payload interface{}) {
	if u.publisher == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		u.log.Error(ctx, fmt.Sprintf("error marshal %s event", topic), err)
		return
	}
	if err := u.publisher.Publish(topic, message.NewMessage(watermill.NewUUID(), data)); err != nil {
		u.log.Error(ctx, fmt.Sprintf("error publish %s event", topic), err)
	}
}

func minuteOfDay(m int) domain.TimeOfDay {
	return domain.TimeOfDay{Hour: m / 60, Minute: m % 60}
}

func toSlots(intervals []entity.SlotInterval) []domain.Slot {
	slots := make([]domain.Slot, 0, len(intervals))
	for _, i := range intervals {
		slots = append(slots, i.ToSlot())
	}
	return slots
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func formatTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(timestampLayout)
}

func toResponse(b entity.Booking) response.Booking {
	resp := response.Booking{
		ID:            b.ID.String(),
		UserID:        b.UserID,
		FacilityID:    b.FacilityID,
		CourtID:       b.CourtID,
		Date:          b.BookingDate.Format(domain.DateLayout),
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		DurationHours: b.Duration,
		Status:        string(b.Status),
		Pricing: response.Pricing{
			BasePrice:          b.BasePrice,
			TotalPrice:         b.TotalPrice,
			Currency:           b.Currency,
			AppliedMultipliers: []domain.AppliedMultiplier(b.AppliedMultipliers),
		},
		Payment: response.Payment{
			Method:        string(b.PaymentMethod),
			Status:        string(b.PaymentStatus),
			Amount:        b.PaymentAmount,
			Currency:      b.PaymentCurrency,
			TransactionID: b.TransactionID.String,
			PaidAt:        formatTime(b.PaidAt),
		},
		SpecialRequests: b.SpecialRequests.String,
		CheckedInAt:     formatTime(b.CheckedInAt),
		CheckedOutAt:    formatTime(b.CheckedOutAt),
		CreatedAt:       b.CreatedAt.Format(timestampLayout),
	}
	if b.IsCancelled {
		resp.Cancellation = &response.Cancellation{
			CancelledBy:  b.CancelledBy.String,
			CancelledAt:  formatTime(b.CancelledAt),
			Reason:       b.CancellationReason.String,
			RefundAmount: b.RefundAmount.Float64,
			RefundStatus: b.RefundStatus.String,
		}
	}
	return resp
}
