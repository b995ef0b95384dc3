package repository

import (
	"context"

	"github.com/stocksuperhero/dashboard/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// PriceRepository handles database operations for price and technical series
type PriceRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewPriceRepository creates a new price repository
func NewPriceRepository(db *sqlx.DB, logger *zap.Logger) *PriceRepository {
	return &PriceRepository{
		db:     db,
		logger: logger,
	}
}

// ListPrices returns the fact rows of a symbol ordered by date
func (r *PriceRepository) ListPrices(ctx context.Context, symbol string) ([]model.PricePoint, error) {
	query := `
		SELECT sym, dt_st, p, high_tp, mid_tp, low_tp
		FROM fact
		WHERE sym = $1
		ORDER BY dt_st`

	points := []model.PricePoint{}
	if err := r.db.SelectContext(ctx, &points, query, symbol); err != nil {
		r.logger.Error("failed to list prices", zap.Error(err), zap.String("symbol", symbol))
		return nil, err
	}

	return points, nil
}

// ListTechnicals returns the precomputed MACD rows of a symbol ordered by date
func (r *PriceRepository) ListTechnicals(ctx context.Context, symbol string) ([]model.TechnicalPoint, error) {
	query := `
		SELECT dt_st, md, mds, mdh
		FROM tech
		WHERE sym = $1
		ORDER BY dt_st`

	points := []model.TechnicalPoint{}
	if err := r.db.SelectContext(ctx, &points, query, symbol); err != nil {
		r.logger.Error("failed to list technicals", zap.Error(err), zap.String("symbol", symbol))
		return nil, err
	}

	return points, nil
}
