package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// adminAuthMiddleware guards the reveal routes with a static bearer token.
// When no token is configured the guarded routes are disabled outright
// rather than left open.
type adminAuthMiddleware struct {
	logger     *logrus.Logger
	adminToken string
}

func NewAdminAuthMiddleware(
	logger *logrus.Logger,
	adminToken string,
) Middleware {
	return &adminAuthMiddleware{
		logger:     logger,
		adminToken: adminToken,
	}
}

func (m *adminAuthMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if m.adminToken == "" {
			m.logger.Debug("admin token not configured, rejecting admin request")
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin API disabled"})
		}

		authHeader := ctx.Get(authorizationHeader)
		if authHeader == "" {
			m.logger.Debug("no authorization header provided")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization required"})
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			m.logger.Debug("invalid authorization header format")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization format"})
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		if subtle.ConstantTimeCompare([]byte(tokenString), []byte(m.adminToken)) != 1 {
			m.logger.Debug("invalid admin token")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		return ctx.Next()
	}
}
