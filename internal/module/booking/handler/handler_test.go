package handler_test

import (
	"bytes"
	"context"
	"court-booking-service/internal/module/booking/domain"
	"court-booking-service/internal/module/booking/handler"
	"court-booking-service/internal/module/booking/mocks"
	"court-booking-service/internal/module/booking/models/request"
	"court-booking-service/internal/module/booking/models/response"
	"court-booking-service/internal/pkg/errors"
	"court-booking-service/internal/pkg/helpers"
	log_internal "court-booking-service/internal/pkg/log"
	"court-booking-service/internal/pkg/scheduler"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

var (
	h             *handler.BookingHandler
	ucm           *mocks.Usecase
	logMock       *otelzap.Logger
	app           *fiber.App
	validatorTest *validator.Validate
	p             *mockPublisher

	userActor = domain.Actor{ID: "user-1", Role: domain.RoleUser}
)

type mockPublisher struct {
	mu       sync.Mutex
	messages map[string][]*message.Message
}

// Close implements message.Publisher.
func (m *mockPublisher) Close() error {
	return nil
}

// Publish implements message.Publisher.
func (m *mockPublisher) Publish(topic string, messages ...*message.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[topic] = append(m.messages[topic], messages...)
	return nil
}

func NewMockPublisher() *mockPublisher {
	return &mockPublisher{messages: map[string][]*message.Message{}}
}

func setup() {
	ucm = &mocks.Usecase{}
	logMock = log_internal.Setup()
	validatorTest = validator.New()
	p = NewMockPublisher()
	h = &handler.BookingHandler{
		Log:         logMock,
		Validator:   validatorTest,
		Usecase:     ucm,
		Publish:     p,
		PoisonQueue: "poisoned_queue",
	}
	app = fiber.New()

	withActor := func(ctx *fiber.Ctx) error {
		if ctx.Get("X-Test-Anonymous") == "" {
			ctx.Locals(handler.ActorKey, userActor)
		}
		return ctx.Next()
	}
	v1 := app.Group("/api/v1", withActor)
	v1.Post("/bookings", h.CreateBooking)
	v1.Get("/bookings/me", h.ShowBookings)
	v1.Get("/bookings/:id", h.GetBooking)
	v1.Post("/bookings/:id/cancel", h.CancelBooking)
	v1.Post("/bookings/:id/complete", h.MarkCompleted)
	v1.Post("/bookings/:id/check-in", h.CheckIn)
	v1.Post("/quotes", h.QuotePrice)
	v1.Get("/courts/:id/schedule", h.CourtSchedule)
}

func teardown() {
	ucm = nil
	logMock = nil
	validatorTest = nil
	p = nil
	h = nil
	app = nil
}

func doRequest(t *testing.T, method, target string, body interface{}, headers ...string) (int, helpers.Response) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out helpers.Response
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestCreateBooking(t *testing.T) {
	payload := request.CreateBooking{
		FacilityID:    "facility-1",
		CourtID:       "court-1",
		Date:          "2026-10-21",
		StartTime:     "19:00",
		EndTime:       "21:00",
		PaymentMethod: "credit_card",
	}

	t.Run("created", func(t *testing.T) {
		setup()
		defer teardown()

		ucm.On("CreateBooking", mock.Anything, userActor, &payload).
			Return(response.Booking{ID: "b-1", Status: "confirmed"}, nil)

		code, body := doRequest(t, http.MethodPost, "/api/v1/bookings", payload)
		assert.Equal(t, http.StatusCreated, code)
		assert.True(t, body.Success)
		ucm.AssertExpectations(t)
	})

	t.Run("validation failure", func(t *testing.T) {
		setup()
		defer teardown()

		bad := payload
		bad.PaymentMethod = "bitcoin"
		code, body := doRequest(t, http.MethodPost, "/api/v1/bookings", bad)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, errors.KindBadRequest, body.Error.Kind)
		ucm.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("end or duration required", func(t *testing.T) {
		setup()
		defer teardown()

		bad := payload
		bad.EndTime = ""
		code, _ := doRequest(t, http.MethodPost, "/api/v1/bookings", bad)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("conflict carries the booking id", func(t *testing.T) {
		setup()
		defer teardown()

		ucm.On("CreateBooking", mock.Anything, userActor, &payload).
			Return(response.Booking{}, errors.SlotConflict("b-existing"))

		code, body := doRequest(t, http.MethodPost, "/api/v1/bookings", payload)
		assert.Equal(t, http.StatusConflict, code)
		assert.False(t, body.Success)
		assert.Equal(t, errors.KindSlotConflict, body.Error.Kind)
		assert.Equal(t, "b-existing", body.Error.ConflictID)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		setup()
		defer teardown()

		code, _ := doRequest(t, http.MethodPost, "/api/v1/bookings", payload, "X-Test-Anonymous", "1")
		assert.Equal(t, http.StatusUnauthorized, code)
	})
}

func TestCancelBookingStatusMapping(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "ok", wantCode: http.StatusOK},
		{name: "not found", err: errors.NotFound("booking not found"), wantCode: http.StatusNotFound},
		{name: "forbidden", err: errors.Forbidden("not yours"), wantCode: http.StatusForbidden},
		{name: "invalid state", err: errors.InvalidState("booking is cancelled"), wantCode: http.StatusConflict},
		{name: "deadline passed", err: errors.DeadlinePassed("too late"), wantCode: http.StatusUnprocessableEntity},
		{name: "internal", err: errors.Wrap(errors.New("db down"), "error update booking"), wantCode: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setup()
			defer teardown()

			ucm.On("CancelBooking", mock.Anything, "b-1", userActor, "").
				Return(response.Booking{ID: "b-1", Status: "cancelled"}, tc.err)

			code, body := doRequest(t, http.MethodPost, "/api/v1/bookings/b-1/cancel", nil)
			assert.Equal(t, tc.wantCode, code)
			if tc.wantCode == http.StatusInternalServerError {
				assert.Equal(t, "internal server error", body.Message)
			}
		})
	}

	t.Run("reason is passed through", func(t *testing.T) {
		setup()
		defer teardown()

		ucm.On("CancelBooking", mock.Anything, "b-1", userActor, "rain").
			Return(response.Booking{ID: "b-1"}, nil)

		code, _ := doRequest(t, http.MethodPost, "/api/v1/bookings/b-1/cancel", request.CancelBooking{Reason: "rain"})
		assert.Equal(t, http.StatusOK, code)
		ucm.AssertExpectations(t)
	})
}

func TestStaffTransitions(t *testing.T) {
	setup()
	defer teardown()

	ucm.On("MarkCompleted", mock.Anything, "b-1", userActor).Return(response.Booking{}, errors.Forbidden("staff only"))
	ucm.On("CheckIn", mock.Anything, "b-2", userActor).Return(response.Booking{ID: "b-2"}, nil)

	code, _ := doRequest(t, http.MethodPost, "/api/v1/bookings/b-1/complete", nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, body := doRequest(t, http.MethodPost, "/api/v1/bookings/b-2/check-in", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success check in", body.Message)
}

func TestReads(t *testing.T) {
	setup()
	defer teardown()

	ucm.On("ShowBookings", mock.Anything, userActor).Return([]response.Booking{{ID: "b-1"}}, nil)
	ucm.On("GetBooking", mock.Anything, "b-9", userActor).Return(response.Booking{}, errors.NotFound("booking not found"))

	code, _ := doRequest(t, http.MethodGet, "/api/v1/bookings/me", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = doRequest(t, http.MethodGet, "/api/v1/bookings/b-9", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestQuotePrice(t *testing.T) {
	setup()
	defer teardown()

	payload := request.QuotePrice{CourtID: "court-1", Date: "2026-10-21", StartTime: "23:00", EndTime: "01:00"}
	ucm.On("QuotePrice", mock.Anything, &payload).Return(response.Quote{}, errors.CrossesMidnight("slot crosses midnight"))

	code, body := doRequest(t, http.MethodPost, "/api/v1/quotes", payload)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, errors.KindCrossesMidnight, body.Error.Kind)
}

func TestCourtSchedule(t *testing.T) {
	setup()
	defer teardown()

	ucm.On("CourtSchedule", mock.Anything, "court-1", "2026-10-21").
		Return(response.CourtSchedule{CourtID: "court-1", Open: true}, nil)

	code, _ := doRequest(t, http.MethodGet, "/api/v1/courts/court-1/schedule?date=2026-10-21", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = doRequest(t, http.MethodGet, "/api/v1/courts/court-1/schedule", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestConsumeCourtUpdated(t *testing.T) {
	t.Run("evicts the court", func(t *testing.T) {
		setup()
		defer teardown()

		ucm.On("InvalidateCourt", mock.Anything, "court-1").Return(nil)

		msg := message.NewMessage(watermill.NewUUID(), []byte(`{"id":"court-1"}`))
		assert.NoError(t, h.ConsumeCourtUpdated(msg))
		ucm.AssertExpectations(t)
	})

	t.Run("malformed payload is poisoned", func(t *testing.T) {
		setup()
		defer teardown()

		msg := message.NewMessage(watermill.NewUUID(), []byte(`{"id":`))
		assert.NoError(t, h.ConsumeCourtUpdated(msg))
		assert.Len(t, p.messages["poisoned_queue"], 1)
		ucm.AssertNotCalled(t, "InvalidateCourt", mock.Anything, mock.Anything)
	})

	t.Run("usecase failure is retried", func(t *testing.T) {
		setup()
		defer teardown()

		ucm.On("InvalidateFacility", mock.Anything, "facility-1").Return(errors.Wrap(errors.New("redis down"), "error evict"))

		msg := message.NewMessage(watermill.NewUUID(), []byte(`{"id":"facility-1"}`))
		assert.Error(t, h.ConsumeFacilityUpdated(msg))
		assert.Empty(t, p.messages["poisoned_queue"])
	})
}

func TestSettleRefundTask(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()
	ucm.On("SettleRefund", ctx, "8d3a2f4e-6a1b-4f5c-9a7d-1e2f3a4b5c6d", false).Return(nil)

	payload, _ := json.Marshal(request.SettleRefund{BookingID: "8d3a2f4e-6a1b-4f5c-9a7d-1e2f3a4b5c6d"})
	assert.NoError(t, h.SettleRefund(ctx, asynq.NewTask(scheduler.TypeSettleRefund, payload)))

	err := h.SettleRefund(ctx, asynq.NewTask(scheduler.TypeSettleRefund, []byte(`{"booking_id":"nope"}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	ucm.AssertNumberOfCalls(t, "SettleRefund", 1)
}

func TestSweepElapsedTask(t *testing.T) {
	setup()
	defer teardown()

	ctx := context.Background()
	ucm.On("SweepElapsed", ctx, 0).Return(response.SweepResult{Completed: 2, NoShow: 1}, nil)

	assert.NoError(t, h.SweepElapsed(ctx, asynq.NewTask(scheduler.TypeSweepElapsed, nil)))
	ucm.AssertExpectations(t)
}
