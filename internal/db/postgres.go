package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// KVTableDDL creates the single table the postgres medium stores blobs in.
const KVTableDDL = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

type DB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// New creates a connection pool from a Postgres URL, pings it and makes sure
// the kv_store table exists.
//
// The URL form is what pgxpool.ParseConfig understands natively and what
// DATABASE_URL already holds, so no DSN is assembled by hand.
func New(ctx context.Context, databaseURL string, logger *zap.Logger) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	// Pool tuning for a blob store:
	//
	// MaxConns (10): every table read is one SELECT and every write one
	//   upsert, and writes to a table are already serialized in-process by
	//   the table store. Ten connections cover concurrent reads across
	//   tables without eating into a shared server's max_connections.
	//
	// MinConns (1): one warm connection keeps the first request after an
	//   idle period off the dial path.
	//
	// MaxConnLifetime (1h) and MaxConnIdleTime (20min): recycle connections
	//   so DNS changes and failovers are picked up, and give slots back
	//   when traffic is low.
	//
	// HealthCheckPeriod (1min): idle connections are pinged so a dead one
	//   is dropped before a table read lands on it.
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.MaxConnIdleTime = 20 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Ping proves credentials and network now. A half-open pool is closed
	// rather than handed out.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}

	if _, err := pool.Exec(ctx, KVTableDDL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure kv_store: %w", err)
	}

	logger.Info("DB connection established",
		zap.String("host", poolConfig.ConnConfig.Host),
		zap.String("database", poolConfig.ConnConfig.Database),
		zap.Int32("max_conns", poolConfig.MaxConns),
	)
	return &DB{
		pool:   pool,
		logger: logger,
	}, nil
}

func (db *DB) Close() {
	db.logger.Info("closing database connection pool")
	db.pool.Close()
}

func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) Health(ctx context.Context) error {
	return db.pool.Ping(ctx)
}
