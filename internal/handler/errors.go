package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/stocksuperhero/dashboard/internal/chart"
	"github.com/stocksuperhero/dashboard/internal/service"
	"github.com/stocksuperhero/dashboard/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors to HTTP responses. Unknown errors are logged
// and reported as 500 with fallback as the message.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Session expired")
	case errors.Is(err, service.ErrInvalidAccessKey):
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Invalid access key")
	case errors.Is(err, service.ErrSymbolNotFound):
		utils.SendErrorResponse(c, http.StatusNotFound, "Symbol not found")
	case errors.Is(err, service.ErrUnknownDimension):
		utils.SendErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWatchlistFull):
		utils.SendErrorResponse(c, http.StatusUnprocessableEntity,
			fmt.Sprintf("Watchlist cannot hold more than %d symbols", service.MaxWatchlistSize))
	case errors.Is(err, service.ErrQuotesDisabled):
		utils.SendErrorResponse(c, http.StatusServiceUnavailable, "Live quotes are disabled")
	case errors.Is(err, chart.ErrNotEnoughData):
		utils.SendErrorResponse(c, http.StatusNotFound, "Not enough data to draw this chart")
	default:
		logger.Error(fallback, zap.Error(err), zap.String("path", c.Request.URL.Path))
		_ = c.Error(err)
		utils.SendErrorResponse(c, http.StatusInternalServerError, fallback)
	}
}

// noPriceData is the 404 body for symbols without price rows
func noPriceData(c *gin.Context, symbol string) {
	utils.SendErrorResponse(c, http.StatusNotFound, fmt.Sprintf("No stock price data found for %s", symbol))
}
