package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/sentinelhq/sentinel/pkg/app/analytics"
)

type trendHandler struct {
	logger *logrus.Logger
	finder analytics.Finder
}

func NewTrendHandler(logger *logrus.Logger, finder analytics.Finder) Handler {
	return &trendHandler{
		logger: logger,
		finder: finder,
	}
}

func (h *trendHandler) Handle(c *fiber.Ctx) error {
	points, err := h.finder.Trend(c.Context(), windowFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch request trend"})
	}
	return c.Status(fiber.StatusOK).JSON(points)
}
