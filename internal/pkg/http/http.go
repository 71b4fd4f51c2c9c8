package http

import (
	"court-booking-service/config"
	"court-booking-service/internal/pkg/errors"
	"court-booking-service/internal/pkg/helpers"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.elastic.co/apm/module/apmfiber"
)

func SetupHttpEngine(cfg *config.HttpServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "court-booking-service",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(apmfiber.Middleware())

	return app
}

// errorHandler renders errors that escape a handler (unknown routes, body
// limits, panics) in the same envelope as handler errors.
func errorHandler(ctx *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		switch fe.Code {
		case fiber.StatusNotFound:
			return helpers.RespError(ctx, nil, errors.NotFound(fe.Message))
		case fiber.StatusInternalServerError:
			return helpers.RespError(ctx, nil, errors.Wrap(err, "internal server error"))
		default:
			return helpers.RespError(ctx, nil, errors.BadRequest(fe.Message))
		}
	}
	return helpers.RespError(ctx, nil, err)
}

func StartHttpServer(app *fiber.App, port string) error {
	return app.Listen(fmt.Sprintf(":%s", port))
}
