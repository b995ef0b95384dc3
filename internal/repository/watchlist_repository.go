package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/stocksuperhero/dashboard/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// WatchlistRepository handles database operations for watchlists
type WatchlistRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewWatchlistRepository creates a new watchlist repository
func NewWatchlistRepository(db *sqlx.DB, logger *zap.Logger) *WatchlistRepository {
	return &WatchlistRepository{
		db:     db,
		logger: logger,
	}
}

// Get returns the watchlist of a key. A key without a stored list gets an empty one.
func (r *WatchlistRepository) Get(ctx context.Context, keyID int) (*model.Watchlist, error) {
	query := `SELECT symbols, updated_at FROM watchlists WHERE key_id = $1`

	var (
		symbols   []string
		updatedAt time.Time
	)
	err := r.db.QueryRowContext(ctx, query, keyID).Scan(pq.Array(&symbols), &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &model.Watchlist{KeyID: keyID, Symbols: []string{}}, nil
		}
		r.logger.Error("failed to get watchlist", zap.Error(err), zap.Int("key_id", keyID))
		return nil, err
	}

	if symbols == nil {
		symbols = []string{}
	}

	return &model.Watchlist{
		KeyID:     keyID,
		Symbols:   symbols,
		UpdatedAt: &updatedAt,
	}, nil
}

// Save replaces the watchlist of a key
func (r *WatchlistRepository) Save(ctx context.Context, keyID int, symbols []string) (*model.Watchlist, error) {
	query := `
		INSERT INTO watchlists (key_id, symbols, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key_id) DO UPDATE
		SET symbols = EXCLUDED.symbols, updated_at = EXCLUDED.updated_at
		RETURNING updated_at`

	var updatedAt time.Time
	if err := r.db.GetContext(ctx, &updatedAt, query, keyID, pq.Array(symbols)); err != nil {
		r.logger.Error("failed to save watchlist", zap.Error(err), zap.Int("key_id", keyID))
		return nil, err
	}

	return &model.Watchlist{
		KeyID:     keyID,
		Symbols:   symbols,
		UpdatedAt: &updatedAt,
	}, nil
}
