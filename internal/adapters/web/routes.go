package web

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures the application routes.
// limiter may be nil to disable post rate limiting.
func SetupRoutes(app *fiber.App, handlers *Handlers, limiter *RateLimiter) {
	app.Get("/", handlers.Home)
	app.Get("/healthz", handlers.Health)

	api := app.Group("/api")
	api.Get("/quacks", handlers.ListQuacks)
	api.Post("/quacks", limiter.Middleware(), handlers.CreateQuack)
	api.Delete("/quacks", handlers.ResetFeed)
	api.Get("/session", handlers.GetSession)
	api.Put("/session", handlers.PutSession)
}
