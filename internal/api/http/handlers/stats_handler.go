package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bot-kit/registration-service/internal/observability"
)

// StatsHandler exposes the in-memory update counters.
type StatsHandler struct {
	metrics *observability.Metrics
}

// NewStatsHandler returns a new handler instance.
func NewStatsHandler(metrics *observability.Metrics) *StatsHandler {
	return &StatsHandler{metrics: metrics}
}

// Counters returns a snapshot of per-endpoint update and error counts.
func (h *StatsHandler) Counters(c *fiber.Ctx) error {
	updates, errs := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"updates": updates,
		"errors":  errs,
	})
}
