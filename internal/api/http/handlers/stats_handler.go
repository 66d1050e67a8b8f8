package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/license-service/internal/service"
)

// StatsHandler serves public statistics.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: statsService}
}

// UserCount handles GET /stats/user-count.
func (h *StatsHandler) UserCount(c *fiber.Ctx) error {
	result, err := h.stats.UserCount(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"count":     result.Total,
		"baseCount": result.Base,
		"realCount": result.Real,
	})
}
