package repository

import (
	"context"

	"github.com/stocksuperhero/dashboard/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// SimilarityRepository runs pgvector cosine searches over vector_table
type SimilarityRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewSimilarityRepository creates a new similarity repository
func NewSimilarityRepository(db *sqlx.DB, logger *zap.Logger) *SimilarityRepository {
	return &SimilarityRepository{
		db:     db,
		logger: logger,
	}
}

// FindSimilar ranks other companies by valuation vector similarity to symbol.
// Returns an empty slice when symbol has no vectors.
func (r *SimilarityRepository) FindSimilar(ctx context.Context, symbol string, limit int) ([]model.SimilarCompany, error) {
	query := `
		WITH target AS (
			SELECT valuation_string_vector AS val, trend_string_vector AS trend
			FROM vector_table
			WHERE sym = $1
		)
		SELECT
			v.sym,
			COALESCE(v.valuation_string, '') AS valuation_string,
			1 - (v.valuation_string_vector <=> t.val) AS cos_sim_val,
			(v.valuation_string_vector <=> t.val) AS cos_dif_val,
			COALESCE(v.trend_string, '') AS trend_string,
			1 - (v.trend_string_vector <=> t.trend) AS cos_sim_trend,
			(v.trend_string_vector <=> t.trend) AS cos_dif_trend
		FROM vector_table v, target t
		WHERE v.sym <> $1
		ORDER BY cos_sim_val DESC
		LIMIT $2`

	results := []model.SimilarCompany{}
	if err := r.db.SelectContext(ctx, &results, query, symbol, limit); err != nil {
		r.logger.Error("failed to find similar companies",
			zap.Error(err),
			zap.String("symbol", symbol),
			zap.Int("limit", limit))
		return nil, err
	}

	return results, nil
}
