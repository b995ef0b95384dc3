package main

import (
	"context"
	"fmt"

	"github.com/stocksuperhero/dashboard/internal/config"
	"github.com/stocksuperhero/dashboard/internal/database"
	"github.com/stocksuperhero/dashboard/internal/logging"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// env is the configuration, logger and database shared by commands
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *sqlx.DB
}

func openEnv(ctx context.Context) (*env, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return nil, err
	}

	// Commands print their own output; keep logs to warnings
	logger, err := logging.New("warn")
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &env{cfg: cfg, logger: logger, db: db}, nil
}

func (e *env) close() {
	e.db.Close()
	e.logger.Sync()
}
