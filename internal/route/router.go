package router

import (
	"court-booking-service/internal/module/booking/handler"
	"court-booking-service/internal/pkg/middleware"
	"court-booking-service/internal/pkg/scheduler"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

func Initialize(app *fiber.App, handlerBooking *handler.BookingHandler, m *middleware.Middleware, monitoring http.Handler) *fiber.App {

	// health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("OK")
	})

	if monitoring != nil {
		app.All(scheduler.MonitoringPath+"/*", adaptor.HTTPHandler(monitoring))
	}

	Api := app.Group("/api")

	v1 := Api.Group("/v1", m.ValidateToken, m.RateLimit)

	bookings := v1.Group("/bookings")
	bookings.Post("/", handlerBooking.CreateBooking)
	bookings.Get("/me", handlerBooking.ShowBookings)
	bookings.Get("/:id", handlerBooking.GetBooking)
	bookings.Post("/:id/cancel", handlerBooking.CancelBooking)
	bookings.Post("/:id/complete", handlerBooking.MarkCompleted)
	bookings.Post("/:id/no-show", handlerBooking.MarkNoShow)
	bookings.Post("/:id/check-in", handlerBooking.CheckIn)
	bookings.Post("/:id/check-out", handlerBooking.CheckOut)

	v1.Post("/quotes", handlerBooking.QuotePrice)
	v1.Get("/courts/:id/schedule", handlerBooking.CourtSchedule)

	return app

}
