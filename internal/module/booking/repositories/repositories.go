package repositories

import (
	"context"
	"court-booking-service/config"
	"court-booking-service/internal/module/booking/domain"
	"court-booking-service/internal/module/booking/models/entity"
	"court-booking-service/internal/pkg/errors"
	"court-booking-service/internal/pkg/lock"
	"court-booking-service/internal/pkg/log"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	circuit "github.com/rubyist/circuitbreaker"
)

const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"

	courtCacheKey    = "catalog:court:%s"
	facilityCacheKey = "catalog:facility:%s"
	slotLockKey      = "booking:lock:%s:%s"
)

type repositories struct {
	db          *sqlx.DB
	log         log.Logger
	httpClient  *circuit.HTTPClient
	cfgCatalog  *config.CatalogServiceConfig
	redisClient *redis.Client
	locker      lock.Locker
	taskClient  *asynq.Client
}

type Repositories interface {
	// http
	FindCourtByID(ctx context.Context, courtID string) (domain.Court, error)
	FindFacilityByID(ctx context.Context, facilityID string) (domain.Facility, error)
	// redis
	EvictCourt(ctx context.Context, courtID string) error
	EvictFacility(ctx context.Context, facilityID string) error
	LockSlot(ctx context.Context, courtID string, date time.Time) (lock.UnlockFunc, error)
	// scheduler
	SetTaskScheduler(ctx context.Context, taskType string, payload []byte, opts ...asynq.Option) (string, error)
	// db
	FindOverlapping(ctx context.Context, courtID string, date time.Time, start, end domain.TimeOfDay) ([]entity.SlotInterval, error)
	InsertBooking(ctx context.Context, booking *entity.Booking) error
	FindBookingByID(ctx context.Context, bookingID string) (entity.Booking, error)
	UpdateBooking(ctx context.Context, transition entity.Transition) error
	UpdateRefundStatus(ctx context.Context, bookingID string, from, to domain.RefundStatus) error
	FindBookingsByUserID(ctx context.Context, userID string) ([]entity.Booking, error)
	FindElapsedBookings(ctx context.Context, date time.Time, minute int, limit int) ([]entity.Booking, error)
}

func New(
	db *sqlx.DB,
	log log.Logger,
	httpClient *circuit.HTTPClient,
	redisClient *redis.Client,
	cfgCatalog *config.CatalogServiceConfig,
	locker lock.Locker,
	taskClient *asynq.Client,
) Repositories {
	return &repositories{
		db:          db,
		log:         log,
		httpClient:  httpClient,
		cfgCatalog:  cfgCatalog,
		redisClient: redisClient,
		locker:      locker,
		taskClient:  taskClient,
	}
}

// FindOverlapping returns the bookings on (court, date) that still hold the
// court and intersect [start, end).
func (r *repositories) FindOverlapping(ctx context.Context, courtID string, date time.Time, start, end domain.TimeOfDay) ([]entity.SlotInterval, error) {
	query := `SELECT id, start_minute, end_minute FROM bookings
		WHERE court_id = $1 AND booking_date = $2
		AND status IN ('pending', 'confirmed') AND is_cancelled = FALSE
		AND start_minute < $4 AND end_minute > $3
		ORDER BY start_minute`

	var slots []entity.SlotInterval
	err := r.db.SelectContext(ctx, &slots, query, courtID, date.Format(domain.DateLayout), start.Minutes(), end.Minutes())
	if err != nil {
		r.log.Error(ctx, "error find overlapping bookings", err)
		return nil, errors.Wrap(err, "error find overlapping bookings")
	}
	return slots, nil
}

// InsertBooking relies on the bookings_no_overlap exclusion constraint as the
// last line of defence against double-booking.
func (r *repositories) InsertBooking(ctx context.Context, b *entity.Booking) error {
	query := `INSERT INTO bookings (
			id, user_id, facility_id, court_id, booking_date, start_time, end_time,
			start_minute, end_minute, duration_hours, status, special_requests,
			base_price, total_price, currency, applied_multipliers,
			payment_method, payment_status, payment_amount, transaction_id, paid_at, payment_currency,
			version, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22,
			$23, $24
		)`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.UserID, b.FacilityID, b.CourtID, b.BookingDate.Format(domain.DateLayout), b.StartTime, b.EndTime,
		b.StartMinute, b.EndMinute, b.Duration, b.Status, b.SpecialRequests,
		b.BasePrice, b.TotalPrice, b.Currency, b.AppliedMultipliers,
		b.PaymentMethod, b.PaymentStatus, b.PaymentAmount, b.TransactionID, b.PaidAt, b.PaymentCurrency,
		b.Version, b.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pgExclusionViolation, pgUniqueViolation:
				return errors.SlotConflict("")
			}
		}
		r.log.Error(ctx, "error insert booking", err)
		return errors.Wrap(err, "error insert booking")
	}
	return nil
}

func (r *repositories) FindBookingByID(ctx context.Context, bookingID string) (entity.Booking, error) {
	if _, err := uuid.Parse(bookingID); err != nil {
		return entity.Booking{}, errors.NotFound("booking not found")
	}

	query := `SELECT * FROM bookings WHERE id = $1`
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, query, bookingID)
	if err == sql.ErrNoRows {
		return entity.Booking{}, errors.NotFound("booking not found")
	}
	if err != nil {
		r.log.Error(ctx, "error find booking by id", err)
		return entity.Booking{}, errors.Wrap(err, "error find booking by id")
	}
	return booking, nil
}

// UpdateBooking is a compare-and-swap on (status, version). Losing the race
// to another transition reports InvalidState.
func (r *repositories) UpdateBooking(ctx context.Context, t entity.Transition) error {
	b := t.Booking
	query := `UPDATE bookings SET
			status = $1, payment_status = $2,
			is_cancelled = $3, cancelled_by = $4, cancelled_at = $5, cancellation_reason = $6,
			refund_amount = $7, refund_status = $8,
			checked_in_at = $9, checked_out_at = $10,
			version = version + 1, updated_at = $11
		WHERE id = $12 AND status = $13 AND version = $14`

	res, err := r.db.ExecContext(ctx, query,
		b.Status, b.PaymentStatus,
		b.IsCancelled, b.CancelledBy, b.CancelledAt, b.CancellationReason,
		b.RefundAmount, b.RefundStatus,
		b.CheckedInAt, b.CheckedOutAt,
		b.UpdatedAt,
		b.ID, t.ExpectedStatus, t.ExpectedVersion,
	)
	if err != nil {
		r.log.Error(ctx, "error update booking", err)
		return errors.Wrap(err, "error update booking")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "error update booking")
	}
	if affected == 0 {
		return errors.InvalidState(fmt.Sprintf("booking %s was modified concurrently", b.ID))
	}
	b.Version = t.ExpectedVersion + 1
	return nil
}

// UpdateRefundStatus is the only write allowed on a terminal booking.
func (r *repositories) UpdateRefundStatus(ctx context.Context, bookingID string, from, to domain.RefundStatus) error {
	query := `UPDATE bookings SET refund_status = $1, updated_at = NOW()
		WHERE id = $2 AND refund_status = $3`

	res, err := r.db.ExecContext(ctx, query, to, bookingID, from)
	if err != nil {
		r.log.Error(ctx, "error update refund status", err)
		return errors.Wrap(err, "error update refund status")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "error update refund status")
	}
	if affected == 0 {
		return errors.InvalidState(fmt.Sprintf("refund of booking %s is not %s", bookingID, from))
	}
	return nil
}

func (r *repositories) FindBookingsByUserID(ctx context.Context, userID string) ([]entity.Booking, error) {
	query := `SELECT * FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`
	bookings := []entity.Booking{}
	err := r.db.SelectContext(ctx, &bookings, query, userID)
	if err != nil {
		r.log.Error(ctx, "error find bookings by user id", err)
		return nil, errors.Wrap(err, "error find bookings by user id")
	}
	return bookings, nil
}

// FindElapsedBookings returns confirmed bookings whose end lies at or before
// minute on date.
func (r *repositories) FindElapsedBookings(ctx context.Context, date time.Time, minute int, limit int) ([]entity.Booking, error) {
	query := `SELECT * FROM bookings
		WHERE status = 'confirmed'
		AND (booking_date < $1 OR (booking_date = $1 AND end_minute <= $2))
		ORDER BY booking_date, end_minute
		LIMIT $3`

	bookings := []entity.Booking{}
	err := r.db.SelectContext(ctx, &bookings, query, date.Format(domain.DateLayout), minute, limit)
	if err != nil {
		r.log.Error(ctx, "error find elapsed bookings", err)
		return nil, errors.Wrap(err, "error find elapsed bookings")
	}
	return bookings, nil
}

func (r *repositories) LockSlot(ctx context.Context, courtID string, date time.Time) (lock.UnlockFunc, error) {
	return r.locker.Lock(ctx, fmt.Sprintf(slotLockKey, courtID, date.Format(domain.DateLayout)))
}

func (r *repositories) SetTaskScheduler(ctx context.Context, taskType string, payload []byte, opts ...asynq.Option) (string, error) {
	info, err := r.taskClient.EnqueueContext(ctx, asynq.NewTask(taskType, payload), opts...)
	if err != nil {
		r.log.Error(ctx, "error enqueue task", err)
		return "", errors.Wrap(err, "error enqueue task")
	}
	return info.ID, nil
}

// FindCourtByID serves the court snapshot from redis when cached and from
// the catalog service otherwise.
func (r *repositories) FindCourtByID(ctx context.Context, courtID string) (domain.Court, error) {
	var court domain.Court
	key := fmt.Sprintf(courtCacheKey, courtID)
	if r.getCache(ctx, key, &court) {
		return court, nil
	}

	url := fmt.Sprintf("http://%s:%s/api/private/courts/%s", r.cfgCatalog.Host, r.cfgCatalog.Port, courtID)
	if err := r.getCatalog(ctx, url, &court); err != nil {
		return domain.Court{}, err
	}
	court.Pricing = court.Pricing.WithDefaults()

	r.setCache(ctx, key, court)
	return court, nil
}

func (r *repositories) FindFacilityByID(ctx context.Context, facilityID string) (domain.Facility, error) {
	var facility domain.Facility
	key := fmt.Sprintf(facilityCacheKey, facilityID)
	if r.getCache(ctx, key, &facility) {
		return facility, nil
	}

	url := fmt.Sprintf("http://%s:%s/api/private/facilities/%s", r.cfgCatalog.Host, r.cfgCatalog.Port, facilityID)
	if err := r.getCatalog(ctx, url, &facility); err != nil {
		return domain.Facility{}, err
	}

	r.setCache(ctx, key, facility)
	return facility, nil
}

func (r *repositories) EvictCourt(ctx context.Context, courtID string) error {
	return r.evict(ctx, fmt.Sprintf(courtCacheKey, courtID))
}

func (r *repositories) EvictFacility(ctx context.Context, facilityID string) error {
	return r.evict(ctx, fmt.Sprintf(facilityCacheKey, facilityID))
}

type catalogResponse struct {
	Data json.RawMessage `json:"data"`
}

func (r *repositories) getCatalog(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "error build catalog request")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.Error(ctx, "error call catalog service", err)
		return errors.Wrap(err, "error call catalog service")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.NotFound("catalog record not found")
	case resp.StatusCode != http.StatusOK:
		r.log.Error(ctx, "unexpected catalog status", resp.StatusCode)
		return errors.InternalServerError(fmt.Sprintf("catalog service returned %d", resp.StatusCode))
	}

	var body catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return errors.Wrap(err, "error decode catalog response")
	}
	if len(body.Data) == 0 || string(body.Data) == "null" {
		return errors.NotFound("catalog record not found")
	}
	if err := json.Unmarshal(body.Data, out); err != nil {
		return errors.Wrap(err, "error decode catalog record")
	}
	return nil
}

// cache failures only cost a catalog round trip, so they are logged and
// otherwise ignored.
func (r *repositories) getCache(ctx context.Context, key string, out interface{}) bool {
	if r.redisClient == nil {
		return false
	}
	data, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn(ctx, "error get catalog cache", err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		r.log.Warn(ctx, "error decode catalog cache", err)
		return false
	}
	return true
}

func (r *repositories) setCache(ctx context.Context, key string, value interface{}) {
	if r.redisClient == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := r.redisClient.Set(ctx, key, data, r.cfgCatalog.CacheTTL).Err(); err != nil {
		r.log.Warn(ctx, "error set catalog cache", err)
	}
}

func (r *repositories) evict(ctx context.Context, key string) error {
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		r.log.Error(ctx, "error evict catalog cache", err)
		return errors.Wrap(err, "error evict catalog cache")
	}
	return nil
}
