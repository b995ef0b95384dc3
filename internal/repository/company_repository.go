package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stocksuperhero/dashboard/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const companyColumns = `
	sym,
	COALESCE(cn, '') AS cn,
	COALESCE(sec, '') AS sec,
	COALESCE(ind, '') AS ind,
	COALESCE(spst, '') AS spst,
	COALESCE(exchange, '') AS exchange,
	ps`

// CompanyRepository handles database operations for the company dimension table
type CompanyRepository struct {
	db       *sqlx.DB
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *sqlx.DB, logger *zap.Logger) *CompanyRepository {
	return &CompanyRepository{
		db:       db,
		validate: validator.New(),
		logger:   logger,
	}
}

// List returns every company record in table order.
// Rows failing validation are logged and kept; the filter engine decides how to treat them.
func (r *CompanyRepository) List(ctx context.Context) ([]model.CompanyRecord, error) {
	query := `SELECT ` + companyColumns + ` FROM dim ORDER BY sym`

	var records []model.CompanyRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		r.logger.Error("failed to list companies", zap.Error(err))
		return nil, err
	}

	invalid := 0
	for _, rec := range records {
		if err := r.validate.Struct(rec); err != nil {
			invalid++
			r.logger.Debug("invalid company record",
				zap.String("symbol", rec.Symbol),
				zap.Error(err))
		}
	}
	if invalid > 0 {
		r.logger.Warn("company records failed validation",
			zap.Int("invalid", invalid),
			zap.Int("total", len(records)))
	}

	return records, nil
}

// GetBySymbol returns a single company, or nil when the symbol is unknown
func (r *CompanyRepository) GetBySymbol(ctx context.Context, symbol string) (*model.CompanyRecord, error) {
	query := `SELECT ` + companyColumns + ` FROM dim WHERE sym = $1`

	var rec model.CompanyRecord
	if err := r.db.GetContext(ctx, &rec, query, symbol); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get company", zap.Error(err), zap.String("symbol", symbol))
		return nil, err
	}

	return &rec, nil
}

// ListBySymbols returns the companies whose symbol is in symbols
func (r *CompanyRepository) ListBySymbols(ctx context.Context, symbols []string) ([]model.CompanyRecord, error) {
	if len(symbols) == 0 {
		return []model.CompanyRecord{}, nil
	}

	query := `SELECT ` + companyColumns + ` FROM dim WHERE sym = ANY($1)`

	var records []model.CompanyRecord
	if err := r.db.SelectContext(ctx, &records, query, pq.Array(symbols)); err != nil {
		r.logger.Error("failed to list companies by symbol", zap.Error(err), zap.Strings("symbols", symbols))
		return nil, err
	}

	return records, nil
}
