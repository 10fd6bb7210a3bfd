package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/sentinelhq/sentinel/pkg/app/analytics"
)

type statsHandler struct {
	logger *logrus.Logger
	finder analytics.Finder
}

func NewStatsHandler(logger *logrus.Logger, finder analytics.Finder) Handler {
	return &statsHandler{
		logger: logger,
		finder: finder,
	}
}

func (h *statsHandler) Handle(c *fiber.Ctx) error {
	stats, err := h.finder.Overview(c.Context(), windowFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch stats"})
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

// windowFromQuery reads the optional "hours" query parameter shared by the
// analytics routes. Zero falls through to the finder's default window.
func windowFromQuery(c *fiber.Ctx) time.Duration {
	hours := c.QueryInt("hours", 0)
	if hours < 0 {
		hours = 0
	}
	return time.Duration(hours) * time.Hour
}
