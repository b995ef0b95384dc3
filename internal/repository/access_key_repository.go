package repository

import (
	"context"
	"errors"

	"github.com/stocksuperhero/dashboard/internal/model"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// AccessKeyRepository handles database operations for app_keys
type AccessKeyRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAccessKeyRepository creates a new access key repository
func NewAccessKeyRepository(db *sqlx.DB, logger *zap.Logger) *AccessKeyRepository {
	return &AccessKeyRepository{
		db:     db,
		logger: logger,
	}
}

// ListActive returns every active access key
func (r *AccessKeyRepository) ListActive(ctx context.Context) ([]model.AccessKey, error) {
	query := `
		SELECT id, label, key_hash, is_active, created_at
		FROM app_keys
		WHERE is_active
		ORDER BY id`

	keys := []model.AccessKey{}
	if err := r.db.SelectContext(ctx, &keys, query); err != nil {
		r.logger.Error("failed to list access keys", zap.Error(err))
		return nil, err
	}

	return keys, nil
}

// RecordLogin appends the current time to the key's login history
func (r *AccessKeyRepository) RecordLogin(ctx context.Context, id int) error {
	query := `
		UPDATE app_keys
		SET login_timestamps = array_append(login_timestamps, NOW())
		WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("failed to record login", zap.Error(err), zap.Int("id", id))
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("access key not found")
	}

	return nil
}

// Create stores a new active key and returns its id
func (r *AccessKeyRepository) Create(ctx context.Context, label, keyHash string) (int, error) {
	query := `
		INSERT INTO app_keys (label, key_hash)
		VALUES ($1, $2)
		RETURNING id`

	var id int
	if err := r.db.GetContext(ctx, &id, query, label, keyHash); err != nil {
		r.logger.Error("failed to create access key", zap.Error(err), zap.String("label", label))
		return 0, err
	}

	return id, nil
}
