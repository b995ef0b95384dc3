package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/stocksuperhero/dashboard/internal/chart"
	"github.com/stocksuperhero/dashboard/internal/middleware"
	"github.com/stocksuperhero/dashboard/internal/model"
	"github.com/stocksuperhero/dashboard/internal/service"
	"github.com/stocksuperhero/dashboard/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EmptyViewMessage accompanies an empty company page
const EmptyViewMessage = "No data available for the selected filters."

// CacheFlusher drops cached responses after a snapshot refresh
type CacheFlusher interface {
	Flush(ctx context.Context) error
}

// CompanyHandler serves the filtered company grid
type CompanyHandler struct {
	filterService  *service.FilterService
	companyService *service.CompanyService
	cache          CacheFlusher
	logger         *zap.Logger
}

// NewCompanyHandler creates a new company handler. cache may be nil.
func NewCompanyHandler(
	filterService *service.FilterService,
	companyService *service.CompanyService,
	cache CacheFlusher,
	logger *zap.Logger,
) *CompanyHandler {
	return &CompanyHandler{
		filterService:  filterService,
		companyService: companyService,
		cache:          cache,
		logger:         logger,
	}
}

// ListCompanies returns a page of the session's filtered view
// GET /api/v1/companies
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	params := utils.ParsePaginationParams(c, 100, 500)

	view, _, err := h.filterService.View(c.Request.Context(), c.GetString(middleware.ContextSessionID))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch companies")
		return
	}

	start, end := utils.PageBounds(len(view), params)
	rows := h.companyService.Rows(c.Request.Context(), view[start:end])

	extra := gin.H{"grid": chart.CompanyGrid(len(rows))}
	if len(view) == 0 {
		extra["message"] = EmptyViewMessage
	}

	utils.SendPaginatedResponse(c, http.StatusOK, rows, len(view), params.Page, params.Limit, extra)
}

// SearchCompanies runs a text search inside the session's view
// GET /api/v1/companies/search?q=
func (h *CompanyHandler) SearchCompanies(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Query parameter q is required")
		return
	}

	view, _, err := h.filterService.View(c.Request.Context(), c.GetString(middleware.ContextSessionID))
	if err != nil {
		respondError(c, h.logger, err, "Failed to search companies")
		return
	}

	results, err := h.companyService.Search(c.Request.Context(), q, view)
	if err != nil {
		respondError(c, h.logger, err, "Failed to search companies")
		return
	}

	utils.SendDataResponse(c, http.StatusOK, h.companyService.Rows(c.Request.Context(), results))
}

// GetCompany returns one company record
// GET /api/v1/companies/:symbol
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	rec, err := h.companyService.Lookup(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch company")
		return
	}

	rows := h.companyService.Rows(c.Request.Context(), []model.CompanyRecord{*rec})
	utils.SendDataResponse(c, http.StatusOK, rows[0])
}

// GetSimilar returns companies with the closest valuation vectors
// GET /api/v1/companies/:symbol/similar
func (h *CompanyHandler) GetSimilar(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultSimilarLimit)))
	if err != nil || limit < 1 {
		limit = service.DefaultSimilarLimit
	}

	similar, err := h.companyService.Similar(c.Request.Context(), c.Param("symbol"), limit)
	if err != nil {
		respondError(c, h.logger, err, "Failed to fetch similar companies")
		return
	}

	utils.SendDataResponse(c, http.StatusOK, similar)
}

// RefreshCompanies reloads the company snapshot
// POST /api/v1/companies/refresh
func (h *CompanyHandler) RefreshCompanies(c *gin.Context) {
	count, err := h.companyService.Refresh(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to refresh companies")
		return
	}

	if h.cache != nil {
		if err := h.cache.Flush(c.Request.Context()); err != nil {
			h.logger.Warn("Failed to flush response cache", zap.Error(err))
		}
	}

	h.logger.Info("Company snapshot refreshed", zap.Int("count", count))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"count":     count,
		"loaded_at": h.companyService.LoadedAt(),
	}})
}
