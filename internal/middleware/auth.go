package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/stocksuperhero/dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by SessionAuth
const (
	ContextKeyID     = "keyID"
	ContextSessionID = "sessionID"
	ContextClaims    = "claims"
)

// Authenticator validates a session token
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*service.Claims, error)
}

// SessionAuth requires a Bearer token whose session still exists
func SessionAuth(auth Authenticator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Check if it's a Bearer token
		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			c.Abort()
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), headerParts[1])
		if err != nil {
			if errors.Is(err, service.ErrSessionNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			} else {
				logger.Debug("Failed to validate token", zap.Error(err))
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyID, claims.KeyID)
		c.Set(ContextSessionID, claims.SessionID)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by SessionAuth
func ClaimsFrom(c *gin.Context) (*service.Claims, bool) {
	v, exists := c.Get(ContextClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok
}
