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

// AuthHandler handles access-key login and logout
type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles access-key login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "access_key is required")
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.AccessKey)
	if err != nil {
		respondError(c, h.logger, err, "Failed to log in")
		return
	}

	utils.SendDataResponse(c, http.StatusOK, resp)
}

// Logout closes the caller's session
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		utils.SendErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, h.logger, err, "Failed to log out")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
