package health

import (
	"wealthpulse-backend/internal/health"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers bundles health endpoints.
type Handlers struct {
	Rdb            *redis.Client
	DB             health.DBPinger
	HealthAdminKey string
}

// JSON GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := health.CollectHealth(c.Context(), h.Rdb, h.DB)
	return c.JSON(result)
}

// Reset GET /health/reset — clears traffic counters; requires the admin key.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	if h.HealthAdminKey == "" || c.Query("key") != h.HealthAdminKey {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error"})
	}
	if err := health.Reset(c.Context(), h.Rdb); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
