package handler

import (
	"context"
	"court-booking-service/internal/module/booking/domain"
	"court-booking-service/internal/module/booking/models/event"
	"court-booking-service/internal/module/booking/models/request"
	"court-booking-service/internal/module/booking/usecases"
	"court-booking-service/internal/pkg/errors"
	"court-booking-service/internal/pkg/helpers"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

// ActorKey is the fiber Locals key the identity middleware stores the
// caller under.
const ActorKey = "actor"

type BookingHandler struct {
	Log         *otelzap.Logger
	Validator   *validator.Validate
	Usecase     usecases.Usecase
	Publish     message.Publisher
	PoisonQueue string
}

func actorFrom(ctx *fiber.Ctx) (domain.Actor, error) {
	actor, ok := ctx.Locals(ActorKey).(domain.Actor)
	if !ok {
		return domain.Actor{}, errors.UnauthorizedError("missing caller identity")
	}
	return actor, nil
}

func (h *BookingHandler) CreateBooking(ctx *fiber.Ctx) error {
	var req request.CreateBooking
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	actor, err := actorFrom(ctx)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	resp, err := h.Usecase.CreateBooking(ctx.UserContext(), actor, &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error create booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespStatus(ctx, h.Log, fiber.StatusCreated, resp, "success create booking")
}

func (h *BookingHandler) ShowBookings(ctx *fiber.Ctx) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	resp, err := h.Usecase.ShowBookings(ctx.UserContext(), actor)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error show bookings: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success show bookings")
}

func (h *BookingHandler) GetBooking(ctx *fiber.Ctx) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	resp, err := h.Usecase.GetBooking(ctx.UserContext(), ctx.Params("id"), actor)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error get booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success get booking")
}

func (h *BookingHandler) CancelBooking(ctx *fiber.Ctx) error {
	var req request.CancelBooking
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
			return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
		}
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	actor, err := actorFrom(ctx)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	resp, err := h.Usecase.CancelBooking(ctx.UserContext(), ctx.Params("id"), actor, req.Reason)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error cancel booking: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success cancel booking")
}

type transitionFunc func(ctx context.Context, bookingID string, actor domain.Actor) (interface{}, error)

// transition serves the body-less staff actions on a single booking.
func (h *BookingHandler) transition(ctx *fiber.Ctx, name string, fn transitionFunc) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return helpers.RespError(ctx, h.Log, err)
	}

	resp, err := fn(ctx.UserContext(), ctx.Params("id"), actor)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error %s: %v", name, err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success "+name)
}

func (h *BookingHandler) MarkCompleted(ctx *fiber.Ctx) error {
	return h.transition(ctx, "mark completed", func(c context.Context, id string, a domain.Actor) (interface{}, error) {
		return h.Usecase.MarkCompleted(c, id, a)
	})
}

func (h *BookingHandler) MarkNoShow(ctx *fiber.Ctx) error {
	return h.transition(ctx, "mark no-show", func(c context.Context, id string, a domain.Actor) (interface{}, error) {
		return h.Usecase.MarkNoShow(c, id, a)
	})
}

func (h *BookingHandler) CheckIn(ctx *fiber.Ctx) error {
	return h.transition(ctx, "check in", func(c context.Context, id string, a domain.Actor) (interface{}, error) {
		return h.Usecase.CheckIn(c, id, a)
	})
}

func (h *BookingHandler) CheckOut(ctx *fiber.Ctx) error {
	return h.transition(ctx, "check out", func(c context.Context, id string, a domain.Actor) (interface{}, error) {
		return h.Usecase.CheckOut(c, id, a)
	})
}

func (h *BookingHandler) QuotePrice(ctx *fiber.Ctx) error {
	var req request.QuotePrice
	if err := ctx.BodyParser(&req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error parse request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest("error parse request"))
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.QuotePrice(ctx.UserContext(), &req)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error quote price: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success quote price")
}

func (h *BookingHandler) CourtSchedule(ctx *fiber.Ctx) error {
	req := request.CourtSchedule{
		CourtID: ctx.Params("id"),
		Date:    ctx.Query("date"),
	}
	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate request: %v", err))
		return helpers.RespError(ctx, h.Log, errors.BadRequest(err.Error()))
	}

	resp, err := h.Usecase.CourtSchedule(ctx.UserContext(), req.CourtID, req.Date)
	if err != nil {
		h.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error court schedule: %v", err))
		return helpers.RespError(ctx, h.Log, err)
	}

	return helpers.RespSuccess(ctx, h.Log, resp, "success court schedule")
}

func (h *BookingHandler) ConsumeCourtUpdated(msg *message.Message) error {
	return h.consumeCatalogUpdate(msg, event.TopicCatalogCourtUpdated, h.Usecase.InvalidateCourt)
}

func (h *BookingHandler) ConsumeFacilityUpdated(msg *message.Message) error {
	return h.consumeCatalogUpdate(msg, event.TopicCatalogFacilityUpdated, h.Usecase.InvalidateFacility)
}

// consumeCatalogUpdate moves undecodable payloads to the poison queue at
// once; usecase failures are returned so the router retries them.
func (h *BookingHandler) consumeCatalogUpdate(msg *message.Message, topic string, invalidate func(ctx context.Context, id string) error) error {
	var req event.CatalogUpdated
	err := json.Unmarshal(msg.Payload, &req)
	if err == nil {
		err = h.Validator.Struct(req)
	}
	if err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error unmarshal message: %v", err))

		reqPoisoned := request.PoisonedQueue{
			TopicTarget: topic,
			ErrorMsg:    err.Error(),
			Payload:     msg.Payload,
		}

		jsonPayload, _ := json.Marshal(reqPoisoned)
		if err := h.Publish.Publish(h.PoisonQueue, message.NewMessage(watermill.NewUUID(), jsonPayload)); err != nil {
			h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error publish to poison queue: %v", err))
			return err
		}
		return nil
	}

	if err := invalidate(msg.Context(), req.ID); err != nil {
		h.Log.Ctx(msg.Context()).Error(fmt.Sprintf("error invalidate %s: %v", topic, err))
		return err
	}

	return nil
}

func (h *BookingHandler) SettleRefund(ctx context.Context, t *asynq.Task) error {
	var req request.SettleRefund
	if err := json.Unmarshal(t.Payload(), &req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error unmarshal payload: %v", err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error validate payload: %v", err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, ok := asynq.GetMaxRetry(ctx)
	final := ok && retried >= maxRetry

	if err := h.Usecase.SettleRefund(ctx, req.BookingID, final); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error settle refund: %v", err))
		return err
	}

	return nil
}

func (h *BookingHandler) SweepElapsed(ctx context.Context, t *asynq.Task) error {
	var req request.SweepElapsed
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &req); err != nil {
			h.Log.Ctx(ctx).Error(fmt.Sprintf("error unmarshal payload: %v", err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
	}

	if err := h.Validator.Struct(req); err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error validate payload: %v", err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	resp, err := h.Usecase.SweepElapsed(ctx, req.BatchSize)
	if err != nil {
		h.Log.Ctx(ctx).Error(fmt.Sprintf("error sweep elapsed bookings: %v", err))
		return err
	}

	h.Log.Ctx(ctx).Info(fmt.Sprintf("swept elapsed bookings: %d completed, %d no-show", resp.Completed, resp.NoShow))
	return nil
}
