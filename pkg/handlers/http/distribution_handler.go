package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/sentinelhq/sentinel/pkg/app/analytics"
)

type distributionHandler struct {
	logger *logrus.Logger
	finder analytics.Finder
}

func NewDistributionHandler(logger *logrus.Logger, finder analytics.Finder) Handler {
	return &distributionHandler{
		logger: logger,
		finder: finder,
	}
}

func (h *distributionHandler) Handle(c *fiber.Ctx) error {
	buckets, err := h.finder.Distribution(c.Context(), windowFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch entity distribution"})
	}
	return c.Status(fiber.StatusOK).JSON(buckets)
}
