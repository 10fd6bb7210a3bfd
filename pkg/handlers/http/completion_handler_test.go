package http

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionApp() *fiber.App {
	app := fiber.New()
	app.Post("/v1/chat/completions", NewCompletionHandler(testLogger(), nil).Handle)
	return app
}

func TestCompletionHandlerRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/v1/chat/completions", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := completionApp().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCompletionHandlerRejectsEmptyMessages(t *testing.T) {
	req := httptest.NewRequest("POST", "/v1/chat/completions", bytes.NewBufferString(`{"model":"gpt-4o","messages":[]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := completionApp().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCompletionHandlerRejectsMissingRole(t *testing.T) {
	body := `{"model":"gpt-4o","messages":[{"content":"hello"}]}`
	req := httptest.NewRequest("POST", "/v1/chat/completions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := completionApp().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
