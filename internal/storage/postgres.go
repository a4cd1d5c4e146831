package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv_store
(
    key        VARCHAR PRIMARY KEY,
    value      TEXT        NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// pgxConn is the part of *pgxpool.Pool the store uses.
type pgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresKV struct {
	db pgxConn
}

func NewPostgresKV(db pgxConn) *PostgresKV {
	return &PostgresKV{
		db: db,
	}
}

// EnsureSchema creates the kv_store table if it is missing.
func (kv *PostgresKV) EnsureSchema(ctx context.Context) error {
	if _, err := kv.db.Exec(ctx, kvSchema); err != nil {
		return fmt.Errorf("create kv_store table: %w", err)
	}
	return nil
}

func (kv *PostgresKV) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := kv.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1;`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("select %s: %w", key, err)
	}
	return value, nil
}

func (kv *PostgresKV) Set(ctx context.Context, key, value string) error {
	_, err := kv.db.Exec(
		ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at;`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (kv *PostgresKV) Delete(ctx context.Context, key string) error {
	if _, err := kv.db.Exec(ctx, `DELETE FROM kv_store WHERE key = $1;`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
