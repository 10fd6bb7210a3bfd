package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/sentinelhq/sentinel/pkg/app/analytics"
)

type recentEventsHandler struct {
	logger *logrus.Logger
	finder analytics.Finder
}

func NewRecentEventsHandler(logger *logrus.Logger, finder analytics.Finder) Handler {
	return &recentEventsHandler{
		logger: logger,
		finder: finder,
	}
}

func (h *recentEventsHandler) Handle(c *fiber.Ctx) error {
	events, err := h.finder.Recent(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch audit events"})
	}
	return c.Status(fiber.StatusOK).JSON(events)
}
