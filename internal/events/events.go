package events

import (
	"strconv"
	"time"
)

// Event types
const (
	TypeLogin            = "login"
	TypeLogout           = "logout"
	TypeWatchlistUpdated = "watchlist.updated"
)

// Event is the JSON payload published for session and watchlist activity
type Event struct {
	Type      string                 `json:"type"`
	KeyID     int                    `json:"key_id"`
	SessionID string                 `json:"session_id,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewMessage wraps an event keyed by access key id, so one key's events stay ordered
func NewMessage(e Event) Message {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	return Message{
		Key:   strconv.Itoa(e.KeyID),
		Value: e,
	}
}
