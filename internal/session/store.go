// Package session keeps the per-login dashboard state, most importantly the
// FilterState, isolated per session id.
package session

import (
	"context"

	"github.com/stocksuperhero/dashboard/internal/model"
)

// Store persists sessions. Get returns nil, nil for an unknown or expired id.
type Store interface {
	Get(ctx context.Context, id string) (*model.Session, error)
	Save(ctx context.Context, s *model.Session) error
	Delete(ctx context.Context, id string) error
}
