package kv

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/nugabest/estatedb/internal/db"
)

// Postgres keeps blobs in the kv_store table created by db.New.
type Postgres struct {
	database *db.DB
}

func NewPostgres(database *db.DB) *Postgres {
	return &Postgres{database: database}
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.database.Pool().QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, unavailable("postgres get", err)
	}
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = now()`

	if _, err := p.database.Pool().Exec(ctx, query, key, value); err != nil {
		return unavailable("postgres set", err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.database.Pool().Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return unavailable("postgres delete", err)
	}
	return nil
}

func (p *Postgres) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := p.database.Pool().Query(ctx, `SELECT key FROM kv_store WHERE starts_with(key, $1) ORDER BY key`, prefix)
	if err != nil {
		return nil, unavailable("postgres keys", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, unavailable("postgres scan key", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("postgres iterate keys", err)
	}
	return keys, nil
}

func (p *Postgres) Close() error {
	p.database.Close()
	return nil
}
