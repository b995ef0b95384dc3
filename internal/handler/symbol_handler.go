package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/stocksuperhero/dashboard/internal/chart"
	"github.com/stocksuperhero/dashboard/internal/service"
	"github.com/stocksuperhero/dashboard/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const svgContentType = "image/svg+xml"

// SymbolHandler serves per-symbol detail data
type SymbolHandler struct {
	chartService *service.ChartService
	quoteService *service.QuoteService
	logger       *zap.Logger
}

// NewSymbolHandler creates a new symbol handler
func NewSymbolHandler(chartService *service.ChartService, quoteService *service.QuoteService, logger *zap.Logger) *SymbolHandler {
	return &SymbolHandler{
		chartService: chartService,
		quoteService: quoteService,
		logger:       logger,
	}
}

// GetPrices returns the price history of a symbol
// GET /api/v1/symbols/:symbol/prices
func (h *SymbolHandler) GetPrices(c *gin.Context) {
	symbol := service.NormalizeSymbol(c.Param("symbol"))

	history, err := h.chartService.History(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, service.ErrNoPriceData) {
			noPriceData(c, symbol)
			return
		}
		respondError(c, h.logger, err, "Failed to fetch prices")
		return
	}

	utils.SendDataResponse(c, http.StatusOK, history)
}

// GetPriceChart returns the price area chart
// GET /api/v1/symbols/:symbol/charts/price
func (h *SymbolHandler) GetPriceChart(c *gin.Context) {
	symbol := service.NormalizeSymbol(c.Param("symbol"))

	pc, err := h.chartService.PriceChart(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, service.ErrNoPriceData) {
			noPriceData(c, symbol)
			return
		}
		respondError(c, h.logger, err, "Failed to build price chart")
		return
	}

	utils.SendDataResponse(c, http.StatusOK, pc)
}

// GetPriceSVG renders the price chart
// GET /api/v1/symbols/:symbol/charts/price.svg
func (h *SymbolHandler) GetPriceSVG(c *gin.Context) {
	symbol := service.NormalizeSymbol(c.Param("symbol"))

	pc, err := h.chartService.PriceChart(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, service.ErrNoPriceData) {
			noPriceData(c, symbol)
			return
		}
		respondError(c, h.logger, err, "Failed to build price chart")
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderPriceSVG(&buf, pc); err != nil {
		respondError(c, h.logger, err, "Failed to render price chart")
		return
	}
	c.Data(http.StatusOK, svgContentType, buf.Bytes())
}

// GetMACD returns MACD, signal and histogram series
// GET /api/v1/symbols/:symbol/charts/macd
func (h *SymbolHandler) GetMACD(c *gin.Context) {
	symbol := service.NormalizeSymbol(c.Param("symbol"))

	macd, err := h.chartService.MACD(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, service.ErrNoPriceData) {
			noPriceData(c, symbol)
			return
		}
		respondError(c, h.logger, err, "Failed to build MACD chart")
		return
	}

	utils.SendDataResponse(c, http.StatusOK, macd)
}

// GetQuote returns a live quote
// GET /api/v1/symbols/:symbol/quote
func (h *SymbolHandler) GetQuote(c *gin.Context) {
	quote, err := h.quoteService.Get(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch quote")
		return
	}

	utils.SendDataResponse(c, http.StatusOK, quote)
}
