package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/warrick-io/warrick/internal/platform/db"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS kv_documents (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// updateLockID keys the transaction-scoped advisory lock taken by Update.
const updateLockID int64 = 0x77617272

// Postgres keeps documents in a single kv_documents table.
type Postgres struct {
	pool   *pgxpool.Pool
	prefix string
}

// NewPostgres ensures the documents table exists and returns the store.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool, prefix string) (*Postgres, error) {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("storage/postgres: migrate: %w", err)
	}
	return &Postgres{pool: pool, prefix: prefix}, nil
}

func (p *Postgres) key(key string) string { return p.prefix + key }

// Get implements Reader.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return pgGet(ctx, p.pool, p.key(key))
}

// Set implements Writer.
func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	return pgSet(ctx, p.pool, p.key(key), value)
}

// Delete implements Writer.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	return pgDelete(ctx, p.pool, p.key(key))
}

// Update runs fn in a read-committed transaction serialised by an advisory lock.
func (p *Postgres) Update(ctx context.Context, fn func(context.Context, Tx) error) error {
	return db.WithTxOptions(ctx, p.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", updateLockID); err != nil {
			return fmt.Errorf("storage/postgres: lock: %w", err)
		}
		return fn(ctx, &postgresTx{tx: tx, prefix: p.prefix})
	})
}

// Keys implements Store.
func (p *Postgres) Keys(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, "SELECT key FROM kv_documents WHERE left(key, length($1)) = $1 ORDER BY key", p.prefix)
	if err != nil {
		return nil, fmt.Errorf("storage/postgres: keys: %w", err)
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("storage/postgres: scan key: %w", err)
		}
		keys = append(keys, strings.TrimPrefix(key, p.prefix))
	}
	return keys, rows.Err()
}

// Close is a no-op; the pool is owned by the caller.
func (p *Postgres) Close() error { return nil }

type postgresTx struct {
	tx     pgx.Tx
	prefix string
}

func (t *postgresTx) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return pgGet(ctx, t.tx, t.prefix+key)
}

func (t *postgresTx) Set(ctx context.Context, key string, value []byte) error {
	return pgSet(ctx, t.tx, t.prefix+key, value)
}

func (t *postgresTx) Delete(ctx context.Context, key string) error {
	return pgDelete(ctx, t.tx, t.prefix+key)
}

type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func pgGet(ctx context.Context, q pgExecutor, key string) ([]byte, bool, error) {
	var value []byte
	err := q.QueryRow(ctx, "SELECT value FROM kv_documents WHERE key = $1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage/postgres: get %s: %w", key, err)
	}
	return value, true, nil
}

func pgSet(ctx context.Context, q pgExecutor, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	const stmt = `INSERT INTO kv_documents (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := q.Exec(ctx, stmt, key, value); err != nil {
		return fmt.Errorf("storage/postgres: set %s: %w", key, err)
	}
	return nil
}

func pgDelete(ctx context.Context, q pgExecutor, key string) error {
	if _, err := q.Exec(ctx, "DELETE FROM kv_documents WHERE key = $1", key); err != nil {
		return fmt.Errorf("storage/postgres: delete %s: %w", key, err)
	}
	return nil
}
