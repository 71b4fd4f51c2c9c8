package middleware

import (
	"court-booking-service/internal/module/booking/domain"
	"court-booking-service/internal/module/booking/handler"
	"court-booking-service/internal/pkg/errors"
	"court-booking-service/internal/pkg/helpers"
	"court-booking-service/internal/pkg/ratelimit"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type Middleware struct {
	Log       *otelzap.Logger
	JWTSecret string
	Issuer    string
	Limiter   ratelimit.Limiter
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (m *Middleware) ValidateToken(ctx *fiber.Ctx) error {
	auth := ctx.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		m.Log.Ctx(ctx.UserContext()).Error("error get token from header")
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("missing bearer token"))
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if m.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.Issuer))
	}

	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		return []byte(m.JWTSecret), nil
	}, opts...)
	if err != nil {
		m.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate token: %v", err))
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("invalid token"))
	}

	if c.Subject == "" {
		m.Log.Ctx(ctx.UserContext()).Error("error validate token: empty subject")
		return helpers.RespError(ctx, m.Log, errors.UnauthorizedError("invalid token"))
	}

	role, err := domain.ParseRole(c.Role)
	if err != nil {
		m.Log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("error validate token: %v", err))
		return helpers.RespError(ctx, m.Log, err)
	}

	ctx.Locals(handler.ActorKey, domain.Actor{ID: c.Subject, Role: role})

	return ctx.Next()
}

// RateLimit keys on the authenticated caller when there is one and on the
// client IP otherwise. A limiter outage lets the request through.
func (m *Middleware) RateLimit(ctx *fiber.Ctx) error {
	if m.Limiter == nil {
		return ctx.Next()
	}

	key := "ip:" + ctx.IP()
	if actor, ok := ctx.Locals(handler.ActorKey).(domain.Actor); ok {
		key = "actor:" + actor.ID
	}

	res, err := m.Limiter.Allow(ctx.UserContext(), key)
	if err != nil {
		m.Log.Ctx(ctx.UserContext()).Warn(fmt.Sprintf("error check rate limit: %v", err))
		return ctx.Next()
	}

	ctx.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
	ctx.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	if !res.Allowed {
		ctx.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
		return helpers.RespError(ctx, m.Log, errors.TooManyRequests("too many requests"))
	}

	return ctx.Next()
}
