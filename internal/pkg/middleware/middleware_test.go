package middleware_test

import (
	"context"
	"court-booking-service/internal/module/booking/domain"
	"court-booking-service/internal/module/booking/handler"
	log_internal "court-booking-service/internal/pkg/log"
	"court-booking-service/internal/pkg/middleware"
	"court-booking-service/internal/pkg/ratelimit"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func newApp(m *middleware.Middleware) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", m.ValidateToken, m.RateLimit, func(ctx *fiber.Ctx) error {
		actor := ctx.Locals(handler.ActorKey).(domain.Actor)
		return ctx.SendString(actor.ID + "/" + actor.Role.String())
	})
	return app
}

func TestValidateToken(t *testing.T) {
	m := &middleware.Middleware{Log: log_internal.Setup(), JWTSecret: secret, Issuer: "identity"}
	app := newApp(m)
	exp := time.Now().Add(time.Hour).Unix()

	testCases := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{
			name:     "valid owner token",
			header:   "Bearer " + sign(t, secret, jwt.MapClaims{"sub": "owner-1", "role": "facility_owner", "iss": "identity", "exp": exp}),
			wantCode: http.StatusOK,
			wantBody: "owner-1/facility_owner",
		},
		{name: "missing header", header: "", wantCode: http.StatusUnauthorized},
		{
			name:     "wrong secret",
			header:   "Bearer " + sign(t, "other", jwt.MapClaims{"sub": "u-1", "role": "user", "iss": "identity", "exp": exp}),
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "expired",
			header:   "Bearer " + sign(t, secret, jwt.MapClaims{"sub": "u-1", "role": "user", "iss": "identity", "exp": time.Now().Add(-time.Minute).Unix()}),
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "wrong issuer",
			header:   "Bearer " + sign(t, secret, jwt.MapClaims{"sub": "u-1", "role": "user", "iss": "elsewhere", "exp": exp}),
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "unknown role",
			header:   "Bearer " + sign(t, secret, jwt.MapClaims{"sub": "u-1", "role": "superuser", "iss": "identity", "exp": exp}),
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "system role is never issued",
			header:   "Bearer " + sign(t, secret, jwt.MapClaims{"sub": "u-1", "role": "system", "iss": "identity", "exp": exp}),
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantCode, resp.StatusCode)
			if tc.wantBody != "" {
				body := make([]byte, len(tc.wantBody))
				_, _ = resp.Body.Read(body)
				assert.Equal(t, tc.wantBody, string(body))
			}
		})
	}
}

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	clock := &stepClock{now: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)}
	limiter := ratelimit.NewRedisLimiter(rdb, ratelimit.Config{
		Prefix: "test",
		Limit:  2,
		Window: time.Minute,
		Clock:  clock,
	})

	m := &middleware.Middleware{Log: log_internal.Setup(), JWTSecret: secret, Limiter: limiter}
	app := newApp(m)
	token := "Bearer " + sign(t, secret, jwt.MapClaims{"sub": "u-1", "role": "user"})

	call := func() *http.Response {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	for i := 0; i < 2; i++ {
		resp := call()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := call()
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))

	_, err := limiter.Allow(context.Background(), "actor:u-2")
	assert.NoError(t, err)
}
