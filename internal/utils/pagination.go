package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PaginationParams holds pagination-related query parameters
type PaginationParams struct {
	Page  int
	Limit int
}

// ParsePaginationParams parses and validates pagination parameters from the request
// with support for default and maximum limits
func ParsePaginationParams(c *gin.Context, defaultLimit int, maxLimit int) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}

	if limit < 1 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}

	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}

// CalculateOffset calculates the offset of the first item on page
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages calculates the total number of pages based on total items and limit
func CalculateTotalPages(totalItems, limit int) int {
	totalPages := (totalItems + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	return totalPages
}

// PageBounds returns the [start, end) slice bounds of a page over totalItems.
// Pages past the end yield an empty range.
func PageBounds(totalItems int, params PaginationParams) (start, end int) {
	start = CalculateOffset(params.Page, params.Limit)
	if start > totalItems {
		start = totalItems
	}
	end = start + params.Limit
	if end > totalItems {
		end = totalItems
	}
	return start, end
}

// PaginationMetadata represents the standardized pagination metadata
type PaginationMetadata struct {
	TotalItems   int `json:"totalItems"`
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// NewPaginationMetadata creates a new pagination metadata object
func NewPaginationMetadata(totalItems, page, limit int) PaginationMetadata {
	return PaginationMetadata{
		TotalItems:   totalItems,
		CurrentPage:  page,
		TotalPages:   CalculateTotalPages(totalItems, limit),
		ItemsPerPage: limit,
	}
}

// SendPaginatedResponse sends a standardized paginated API response.
// extra keys are merged into the body.
func SendPaginatedResponse(c *gin.Context, statusCode int, data interface{}, totalItems, page, limit int, extra gin.H) {
	body := gin.H{
		"data":       data,
		"pagination": NewPaginationMetadata(totalItems, page, limit),
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// SendErrorResponse sends a standardized error response
func SendErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// SendDataResponse wraps data in the standard {"data": ...} envelope
func SendDataResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{"data": data})
}
