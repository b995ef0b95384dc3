package handler

import (
	"net/http"

	"github.com/stocksuperhero/dashboard/internal/middleware"
	"github.com/stocksuperhero/dashboard/internal/model"
	"github.com/stocksuperhero/dashboard/internal/service"
	"github.com/stocksuperhero/dashboard/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FilterHandler exposes the session's selector state
type FilterHandler struct {
	filterService *service.FilterService
	logger        *zap.Logger
}

// NewFilterHandler creates a new filter handler
func NewFilterHandler(filterService *service.FilterService, logger *zap.Logger) *FilterHandler {
	return &FilterHandler{
		filterService: filterService,
		logger:        logger,
	}
}

// GetFilters returns the current filters, the options they leave and the view size
// GET /api/v1/filters
func (h *FilterHandler) GetFilters(c *gin.Context) {
	snap, err := h.filterService.State(c.Request.Context(), c.GetString(middleware.ContextSessionID))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch filters")
		return
	}
	utils.SendDataResponse(c, http.StatusOK, snap)
}

// SetFilter replaces one selector
// PUT /api/v1/filters/:dimension
func (h *FilterHandler) SetFilter(c *gin.Context) {
	var req model.FilterUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	dim := service.Dimension(c.Param("dimension"))
	snap, err := h.filterService.Set(c.Request.Context(), c.GetString(middleware.ContextSessionID), dim, req.Values)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update filters")
		return
	}
	utils.SendDataResponse(c, http.StatusOK, snap)
}

// ClearFilters resets all selectors
// DELETE /api/v1/filters
func (h *FilterHandler) ClearFilters(c *gin.Context) {
	snap, err := h.filterService.Clear(c.Request.Context(), c.GetString(middleware.ContextSessionID))
	if err != nil {
		respondError(c, h.logger, err, "Failed to clear filters")
		return
	}
	utils.SendDataResponse(c, http.StatusOK, snap)
}

// SelectSymbol remembers the symbol picked in the detail selector
// PUT /api/v1/selection
func (h *FilterHandler) SelectSymbol(c *gin.Context) {
	var req struct {
		Symbol string `json:"symbol"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	symbol := service.NormalizeSymbol(req.Symbol)
	if err := h.filterService.SelectSymbol(c.Request.Context(), c.GetString(middleware.ContextSessionID), symbol); err != nil {
		respondError(c, h.logger, err, "Failed to select symbol")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"selected_symbol": symbol}})
}
