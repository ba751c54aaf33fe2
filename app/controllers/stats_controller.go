package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bistro/app/services"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

// StatsController serves the admin dashboard aggregates.
type StatsController struct {
	reporting *services.ReportingService
}

func NewStatsController(reporting *services.ReportingService) *StatsController {
	return &StatsController{reporting: reporting}
}

// AdminStats returns the headline counters and total revenue. Admin only.
func (c *StatsController) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.reporting.AdminStats(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("stats: admin stats failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not compute stats")
		return
	}
	response.Success(w, stats)
}

// OrderStats returns per-category order quantity and revenue. Admin only.
func (c *StatsController) OrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.reporting.OrderStatsByCategory(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("stats: order stats failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not compute order stats")
		return
	}
	response.Success(w, stats)
}
