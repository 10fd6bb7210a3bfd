package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sentinelhq/sentinel/pkg/domain"
	"github.com/sentinelhq/sentinel/pkg/domain/redactionlog"
)

type revealHandler struct {
	logger *logrus.Logger
	repo   redactionlog.Repository
}

func NewRevealHandler(logger *logrus.Logger, repo redactionlog.Repository) Handler {
	return &revealHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle returns the token mapping stored for a request id. The route sits
// behind the admin auth middleware since the mapping contains the original
// PII literals.
func (h *revealHandler) Handle(c *fiber.Ctx) error {
	requestID := c.Params("request_id")
	if _, err := uuid.Parse(requestID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request_id format"})
	}

	record, err := h.repo.FindByRequestID(c.Context(), requestID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "redaction record not found"})
		}
		h.logger.WithError(err).WithField("request_id", requestID).Error("failed to fetch redaction record")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch redaction record"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"request_id": record.RequestID,
		"provider":   record.Provider,
		"token_map":  record.TokenMap,
		"created_at": record.CreatedAt,
	})
}
