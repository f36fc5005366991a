package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/empower_finance_app/internal/core/ports/services"
	"github.com/SscSPs/empower_finance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type dashboardHandler struct {
	aggregationService portssvc.AggregationService
}

// RegisterDashboardRoutes registers the combined summary route.
func RegisterDashboardRoutes(rg *gin.RouterGroup, aggregationService portssvc.AggregationService) {
	h := &dashboardHandler{aggregationService: aggregationService}
	rg.GET("/dashboard", h.getDashboard)
}

// getDashboard godoc
// @Summary Get the dashboard
// @Description Overall balance, goals summary, current month breakdown (UTC) and goal list in one response
// @Tags dashboard
// @Produce  json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to build dashboard"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	summary, err := h.aggregationService.DashboardSummary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(*summary))
}
