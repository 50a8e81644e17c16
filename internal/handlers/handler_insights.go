package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/vyapaarhq/ledger_backend/internal/core/ports/services"
	"github.com/vyapaarhq/ledger_backend/internal/dto"
	"github.com/vyapaarhq/ledger_backend/internal/middleware"
)

// insightsHandler handles aggregated purchase reporting requests.
type insightsHandler struct {
	insightsService portssvc.InsightsSvcFacade
}

func newInsightsHandler(insightsService portssvc.InsightsSvcFacade) *insightsHandler {
	return &insightsHandler{
		insightsService: insightsService,
	}
}

// registerInsightsRoutes sets up the insights routes on the authenticated group.
func registerInsightsRoutes(rg *gin.RouterGroup, insightsService portssvc.InsightsSvcFacade) {
	h := newInsightsHandler(insightsService)

	rg.GET("/insights", h.getPurchaseInsights)
}

// getPurchaseInsights godoc
// @Summary Purchase insights
// @Description Aggregates stock purchases over the requested time frame,
// @Description grouped by entry date and quality type, newest date first.
// @Tags insights
// @Produce json
// @Param timeFrame query string false "today, weekly, monthly or all" default(all)
// @Param qualityType query []string false "Quality types to include (repeatable)"
// @Success 200 {object} dto.InsightsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to compute insights"
// @Router /insights [get]
func (h *insightsHandler) getPurchaseInsights(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.InsightsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.insightsService.GetPurchaseInsights(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to compute purchase insights", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute insights"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
