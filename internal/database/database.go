package database

import (
	"context"
	"fmt"
	"time"

	"github.com/stocksuperhero/dashboard/internal/config"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Connect opens the pgx-backed sqlx pool, retrying with exponential backoff
// until cfg.ConnectTimeout elapses.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*sqlx.DB, error) {
	var db *sqlx.DB

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = cfg.ConnectTimeout

	operation := func() error {
		conn, err := sqlx.ConnectContext(ctx, "pgx", cfg.DSN())
		if err != nil {
			return err
		}
		db = conn
		return nil
	}

	notify := func(err error, wait time.Duration) {
		logger.Warn("Database not ready, retrying",
			zap.String("host", cfg.Host),
			zap.Duration("wait", wait),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(policy, ctx), notify); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	logger.Info("Connected to database",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.DBName))

	return db, nil
}
