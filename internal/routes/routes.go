// Package routes defines the API routing configuration.
// It wires the handlers to their paths and applies per-route middleware.
package routes

import (
	"fraudscope/internal/config"
	"fraudscope/internal/handlers"
	"fraudscope/internal/repositories"
	"fraudscope/internal/services/transaction"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies carries everything the routes need.
type Dependencies struct {
	Config             config.Config
	Store              repositories.Store
	TransactionService transaction.Service
	Diagnostics        handlers.Diagnostics
	// Gatherer backs the metrics endpoint. Nil disables it.
	Gatherer prometheus.Gatherer
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(deps.Store, deps.Diagnostics)
	transactionHandler := handlers.NewTransactionHandler(deps.TransactionService)
	alertHandler := handlers.NewAlertHandler(deps.TransactionService)

	// Diagnostics
	app.Get("/", healthHandler.Root)
	app.Get("/test", healthHandler.TestStore)
	app.Get("/health", healthHandler.HealthCheck)

	if deps.Gatherer != nil {
		app.Get(deps.Config.Metrics.Path, adaptor.HTTPHandler(
			promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}),
		))
	}

	api := app.Group("/api")

	create := []fiber.Handler{}
	if deps.Config.Server.RateLimitMax > 0 {
		create = append(create, rateLimiter(deps.Config.Server))
	}
	create = append(create, transactionHandler.CreateTransaction)

	api.Post("/transactions", create...)
	api.Get("/transactions", transactionHandler.ListTransactions)
	api.Get("/alerts", alertHandler.ListAlerts)
}

func rateLimiter(cfg config.ServerConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})
}
