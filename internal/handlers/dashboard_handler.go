// internal/handlers/dashboard_handler.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Mustazir/stillore-server/internal/services"
	"github.com/Mustazir/stillore-server/internal/utils"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context(), c.DefaultQuery("period", "month"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"stats": stats})
}

func (h *DashboardHandler) SalesChart(c *gin.Context) {
	points, err := h.dashboardService.SalesChart(c.Request.Context(), c.DefaultQuery("period", "week"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"sales": points})
}

func (h *DashboardHandler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	top, err := h.dashboardService.TopProducts(c.Request.Context(), limit)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"products": top})
}
