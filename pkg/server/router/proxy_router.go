package router

import (
	"github.com/gofiber/fiber/v2"

	handlers "github.com/sentinelhq/sentinel/pkg/handlers/http"
	"github.com/sentinelhq/sentinel/pkg/middleware"
)

type proxyRouter struct {
	middlewareTransport middleware.Transport
	handlerTransport    handlers.HandlerTransport
}

func NewProxyRouter(
	middlewareTransport middleware.Transport,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &proxyRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *proxyRouter) BuildRoutes(router *fiber.App) error {
	router.Get("/version", r.handlerTransport.GetVersionHandler.Handle)

	// OpenAI compatible surface
	router.Post("/v1/chat/completions", r.handlerTransport.CompletionHandler.Handle)

	v1 := router.Group("/api/v1")
	{
		v1.Post("/completions", r.handlerTransport.CompletionHandler.Handle)

		// Token mappings expose raw PII, so reveal sits behind admin auth.
		reveal := v1.Group("/reveal", r.middlewareTransport.AdminAuthMiddleware.Middleware())
		{
			reveal.Get("/:request_id", r.handlerTransport.RevealHandler.Handle)
		}

		analytics := v1.Group("/analytics")
		{
			analytics.Get("/stats", r.handlerTransport.StatsHandler.Handle)
			analytics.Get("/recent", r.handlerTransport.RecentEventsHandler.Handle)
			analytics.Get("/trend", r.handlerTransport.TrendHandler.Handle)
			analytics.Get("/distribution", r.handlerTransport.DistributionHandler.Handle)
		}
	}
	return nil
}
