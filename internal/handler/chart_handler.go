package handler

import (
	"bytes"
	"net/http"

	"github.com/stocksuperhero/dashboard/internal/chart"
	"github.com/stocksuperhero/dashboard/internal/middleware"
	"github.com/stocksuperhero/dashboard/internal/model"
	"github.com/stocksuperhero/dashboard/internal/service"
	"github.com/stocksuperhero/dashboard/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChartHandler serves the charts drawn over the whole filtered view
type ChartHandler struct {
	filterService *service.FilterService
	chartService  *service.ChartService
	logger        *zap.Logger
}

// NewChartHandler creates a new chart handler
func NewChartHandler(filterService *service.FilterService, chartService *service.ChartService, logger *zap.Logger) *ChartHandler {
	return &ChartHandler{
		filterService: filterService,
		chartService:  chartService,
		logger:        logger,
	}
}

// viewAndSelection loads the session's view. The selected symbol comes from the
// query string, falling back to the one stored on the session.
func (h *ChartHandler) viewAndSelection(c *gin.Context) ([]model.CompanyRecord, string, bool) {
	view, sess, err := h.filterService.View(c.Request.Context(), c.GetString(middleware.ContextSessionID))
	if err != nil {
		respondError(c, h.logger, err, "Failed to load companies")
		return nil, "", false
	}

	selected, ok := c.GetQuery("selected")
	if !ok {
		selected = sess.SelectedSymbol
	}
	return view, selected, true
}

// GetPSBars returns the Price/Sales bars of the view
// GET /api/v1/charts/ps
func (h *ChartHandler) GetPSBars(c *gin.Context) {
	view, selected, ok := h.viewAndSelection(c)
	if !ok {
		return
	}
	utils.SendDataResponse(c, http.StatusOK, h.chartService.PSBars(view, selected))
}

// GetPSBarSVG renders the Price/Sales bars
// GET /api/v1/charts/ps.svg
func (h *ChartHandler) GetPSBarSVG(c *gin.Context) {
	view, selected, ok := h.viewAndSelection(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderPSBarSVG(&buf, h.chartService.PSBars(view, selected)); err != nil {
		respondError(c, h.logger, err, "Failed to render Price/Sales chart")
		return
	}
	c.Data(http.StatusOK, svgContentType, buf.Bytes())
}

// GetGauge returns the Price/Sales gauge
// GET /api/v1/charts/gauge
func (h *ChartHandler) GetGauge(c *gin.Context) {
	view, selected, ok := h.viewAndSelection(c)
	if !ok {
		return
	}

	g, err := h.chartService.Gauge(view, selected)
	if err != nil {
		respondError(c, h.logger, err, "Failed to build gauge")
		return
	}
	utils.SendDataResponse(c, http.StatusOK, g)
}
