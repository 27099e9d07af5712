package handlers

import (
	"context"
	"time"

	"fraudscope/internal/repositories"
	"fraudscope/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

const (
	maxListedCollections = 10
	maxErrorDetail       = 50
	pingTimeout          = 3 * time.Second
)

// Diagnostics reports which connection settings were supplied explicitly.
type Diagnostics struct {
	DatabaseURLSet  bool
	DatabaseNameSet bool
}

type HealthHandler struct {
	store repositories.Store
	diag  Diagnostics
}

func NewHealthHandler(store repositories.Store, diag Diagnostics) *HealthHandler {
	return &HealthHandler{
		store: store,
		diag:  diag,
	}
}

func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Fraud Detection API is running",
	})
}

// HealthCheck pings the store. A failed ping answers 503.
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return response.ServiceUnavailable(c, fiber.Map{
			"status": "degraded",
			"store":  h.store.Name(),
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"store":  h.store.Name(),
	})
}

// TestStore describes store connectivity. It never writes.
func (h *HealthHandler) TestStore(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), pingTimeout)
	defer cancel()

	result := fiber.Map{
		"backend":           "Running",
		"database":          "Not Available",
		"database_url":      setOrNot(h.diag.DatabaseURLSet),
		"database_name":     setOrNot(h.diag.DatabaseNameSet),
		"connection_status": "Not Connected",
		"collections":       []string{},
	}

	if err := h.store.Ping(ctx); err != nil {
		result["database"] = "Error: " + truncate(err.Error(), maxErrorDetail)
		return c.JSON(result)
	}
	result["connection_status"] = "Connected"
	result["database"] = "Available (" + h.store.Name() + ")"

	collections, err := h.store.Collections(ctx)
	if err != nil {
		result["database"] = "Connected but Error: " + truncate(err.Error(), maxErrorDetail)
		return c.JSON(result)
	}
	if collections == nil {
		collections = []string{}
	}
	if len(collections) > maxListedCollections {
		collections = collections[:maxListedCollections]
	}
	result["collections"] = collections
	result["database"] = "Connected & Working"

	return c.JSON(result)
}

func setOrNot(set bool) string {
	if set {
		return "Set"
	}
	return "Not Set"
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
