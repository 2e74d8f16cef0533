package kv

import (
	"context"
	"fmt"

	"github.com/nugabest/estatedb/internal/config"
	"github.com/nugabest/estatedb/internal/db"
	"go.uber.org/zap"
)

// Open builds the medium selected by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Medium, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage; data is lost on exit")
		return NewMemory(), nil
	case config.DriverRedis:
		r, err := NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open redis medium: %w", err)
		}
		logger.Info("redis medium ready")
		return r, nil
	case config.DriverPostgres:
		database, err := db.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("open postgres medium: %w", err)
		}
		return NewPostgres(database), nil
	case config.DriverSQLite:
		s, err := NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("sqlite medium ready", zap.String("path", cfg.SQLitePath))
		return s, nil
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", config.ErrInvalidConfig, cfg.StorageDriver)
	}
}
