package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/healthsync-service/internal/observability"
)

func TestRequestTimeout_DeadlineReachesHandlers(t *testing.T) {
	app := fiber.New()
	app.Use(requestTimeoutMiddleware(time.Hour))
	app.Get("/x", func(c *fiber.Ctx) error {
		_, ok := c.UserContext().Deadline()
		require.True(t, ok, "handlers must observe the request deadline")
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestTimeout_CancelsBlockedStoreCall(t *testing.T) {
	app := fiber.New()
	app.Use(requestTimeoutMiddleware(30 * time.Millisecond))
	app.Get("/slow", func(c *fiber.Ctx) error {
		// Stands in for a store call that honors the context, the way the
		// pgx and go-redis clients do.
		slowStore := func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
				return nil
			}
		}
		if err := slowStore(c.UserContext()); err != nil {
			return c.Status(http.StatusServiceUnavailable).SendString(err.Error())
		}
		return c.SendStatus(http.StatusOK)
	})

	start := time.Now()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/slow", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.Less(t, time.Since(start), time.Second, "request must be released at the deadline")
}

func TestRegisterMiddlewares_ZeroTimeoutMeansNoDeadline(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Get("/x", func(c *fiber.Ctx) error {
		_, ok := c.UserContext().Deadline()
		require.False(t, ok)
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
