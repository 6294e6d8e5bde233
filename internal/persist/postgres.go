package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// PostgresStore keeps snapshots in an append-only table keyed by version,
// so the persisted history survives a misbehaving writer.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the snapshot table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS engine_snapshots (
    version  BIGINT PRIMARY KEY,
    taken_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    data     BYTEA NOT NULL
)`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("persist/postgres: ensure schema: %w", err)
	}
	return nil
}

// Save appends one snapshot version. A duplicate version is treated as
// already persisted: the task queue may deliver a snapshot more than once.
func (s *PostgresStore) Save(ctx context.Context, version int64, blob []byte) error {
	const query = `INSERT INTO engine_snapshots (version, data) VALUES ($1, $2)`
	if _, err := s.pool.Exec(ctx, query, version, blob); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil
		}
		return fmt.Errorf("persist/postgres: save: %w", err)
	}
	return nil
}

// Load returns the highest persisted version, or ErrNoSnapshot.
func (s *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	const query = `SELECT data FROM engine_snapshots ORDER BY version DESC LIMIT 1`
	var blob []byte
	if err := s.pool.QueryRow(ctx, query).Scan(&blob); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("persist/postgres: load: %w", err)
	}
	return blob, nil
}
