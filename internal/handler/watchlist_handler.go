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

// WatchlistHandler serves the access key's watchlist
type WatchlistHandler struct {
	watchlistService *service.WatchlistService
	logger           *zap.Logger
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(watchlistService *service.WatchlistService, logger *zap.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService: watchlistService,
		logger:           logger,
	}
}

// GetWatchlist returns the watchlist
// GET /api/v1/watchlist
func (h *WatchlistHandler) GetWatchlist(c *gin.Context) {
	view, err := h.watchlistService.Get(c.Request.Context(), c.GetInt(middleware.ContextKeyID))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch watchlist")
		return
	}
	utils.SendDataResponse(c, http.StatusOK, view)
}

// ReplaceWatchlist stores a whole new list
// PUT /api/v1/watchlist
func (h *WatchlistHandler) ReplaceWatchlist(c *gin.Context) {
	var req model.WatchlistUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.watchlistService.Replace(c.Request.Context(), c.GetInt(middleware.ContextKeyID), req.Symbols)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update watchlist")
		return
	}
	utils.SendDataResponse(c, http.StatusOK, view)
}

// AddSymbol adds one symbol
// POST /api/v1/watchlist/:symbol
func (h *WatchlistHandler) AddSymbol(c *gin.Context) {
	view, err := h.watchlistService.Add(c.Request.Context(), c.GetInt(middleware.ContextKeyID), c.Param("symbol"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to update watchlist")
		return
	}
	utils.SendDataResponse(c, http.StatusOK, view)
}

// RemoveSymbol removes one symbol
// DELETE /api/v1/watchlist/:symbol
func (h *WatchlistHandler) RemoveSymbol(c *gin.Context) {
	view, err := h.watchlistService.Remove(c.Request.Context(), c.GetInt(middleware.ContextKeyID), c.Param("symbol"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to update watchlist")
		return
	}
	utils.SendDataResponse(c, http.StatusOK, view)
}

// GetTickerTape returns the ticker tape widget config for the watchlist
// GET /api/v1/widgets/ticker-tape
func (h *WatchlistHandler) GetTickerTape(c *gin.Context) {
	tape, err := h.watchlistService.TickerTape(c.Request.Context(), c.GetInt(middleware.ContextKeyID))
	if err != nil {
		respondError(c, h.logger, err, "Failed to build ticker tape")
		return
	}
	c.JSON(http.StatusOK, tape)
}
