package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Proxy
	CompletionHandler Handler

	// Redaction maps
	RevealHandler Handler

	// Analytics
	StatsHandler        Handler
	RecentEventsHandler Handler
	TrendHandler        Handler
	DistributionHandler Handler

	// Misc
	GetVersionHandler Handler
}
