package model

import (
	"time"
)

// AccessKey is a shared application key
type AccessKey struct {
	ID        int       `json:"id" db:"id"`
	Label     string    `json:"label" db:"label"`
	KeyHash   string    `json:"-" db:"key_hash"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LoginRequest represents data needed for access-key login
type LoginRequest struct {
	AccessKey string `json:"access_key" binding:"required"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Label     string    `json:"label"`
}

// Session is the per-login state owned by the host application
type Session struct {
	ID             string      `json:"id"`
	KeyID          int         `json:"key_id"`
	Filters        FilterState `json:"filters"`
	SelectedSymbol string      `json:"selected_symbol,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
