package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresKV keeps values in a single kv_store table.
type PostgresKV struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewPostgresKV(pool PgxPool, tracer trace.Tracer) *PostgresKV {
	return &PostgresKV{pool: pool, tracer: tracer}
}

func (p *PostgresKV) RunMigrations(ctx context.Context) error {
	_, span := p.tracer.Start(ctx, "postgres-kv.run-migrations")
	defer span.End()

	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

func (p *PostgresKV) Get(ctx context.Context, key string) (string, error) {
	_, span := p.tracer.Start(ctx, "postgres-kv.get")
	defer span.End()

	var value string
	err := p.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (p *PostgresKV) Set(ctx context.Context, key, value string) error {
	_, span := p.tracer.Start(ctx, "postgres-kv.set")
	defer span.End()

	_, err := p.pool.Exec(ctx,
		`INSERT INTO kv_store (key, value, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value,
	)
	return err
}
