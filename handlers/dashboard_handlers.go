package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/services"
)

// DashboardHandler handles the aggregation endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
	logger           *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger.Log,
	}
}

// GetStats handles GET /api/dashboard/stats, globally or scoped through the
// id_contribuable query param.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context(), int64Query(c, "id_contribuable"))
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, stats)
}

// GetRevenueByMunicipality handles GET /api/dashboard/recettes-par-commune
func (h *DashboardHandler) GetRevenueByMunicipality(c *gin.Context) {
	rows, err := h.dashboardService.RevenueByMunicipality(c.Request.Context())
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, rows)
}

// GetDeclarationsByType handles GET /api/dashboard/declarations-par-type
func (h *DashboardHandler) GetDeclarationsByType(c *gin.Context) {
	rows, err := h.dashboardService.DeclarationsByType(c.Request.Context())
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, rows)
}
