package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelhq/sentinel/pkg/middleware"
)

func recoverApp() *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New()
	app.Use(middleware.NewPanicRecoverMiddleware(logger).Middleware())
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("raw message content: Ann Lee")
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	return app
}

func TestPanicRecoverMiddleware_Returns500(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)

	resp, err := recoverApp().Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestPanicRecoverMiddleware_ResponseNeverEchoesPanicValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)

	resp, err := recoverApp().Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "Ann Lee")

	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "Internal server error", payload["error"])
}

func TestPanicRecoverMiddleware_PassesThroughHealthyHandlers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)

	resp, err := recoverApp().Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
