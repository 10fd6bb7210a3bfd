package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/sentinelhq/sentinel/pkg/app/completion"
	"github.com/sentinelhq/sentinel/pkg/types"
)

const requestIDHeader = "X-Sentinel-Request-Id"

type completionHandler struct {
	logger  *logrus.Logger
	service *completion.Service
}

func NewCompletionHandler(logger *logrus.Logger, service *completion.Service) Handler {
	return &completionHandler{
		logger:  logger,
		service: service,
	}
}

// Handle accepts an OpenAI-style chat completion request, redacts PII from
// its user messages, forwards it upstream and returns the rehydrated
// response. The redaction request id is echoed in X-Sentinel-Request-Id.
func (h *completionHandler) Handle(c *fiber.Ctx) error {
	var req types.ChatCompletionRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Debug("malformed completion request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if len(req.Messages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "messages must not be empty"})
	}
	for _, msg := range req.Messages {
		if msg.Role == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message role is required"})
		}
	}

	result, err := h.service.Complete(c.Context(), &req)
	if err != nil {
		return h.mapError(c, err)
	}

	c.Set(requestIDHeader, result.RequestID)
	return c.Status(fiber.StatusOK).JSON(result.Response)
}

func (h *completionHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, completion.ErrRecognizerBlocked):
		h.logger.WithError(err).Warn("completion blocked, recognizer unavailable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "entity recognition unavailable"})
	case errors.Is(err, completion.ErrPersistenceFailed):
		h.logger.WithError(err).Error("completion aborted, redaction record not persisted")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to persist redaction record"})
	default:
		h.logger.WithError(err).Error("completion failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "upstream completion failed"})
	}
}
