package blobstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const snapshotsSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
    key        text PRIMARY KEY,
    blob       bytea NOT NULL,
    updated_at timestamptz NOT NULL DEFAULT now()
);`

// PostgresStore keeps one row per snapshot key. It exists for deployments
// that already run Postgres and want the snapshots alongside their backups.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore ensures the snapshots table exists and returns the store.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, snapshotsSchema); err != nil {
		return nil, fmt.Errorf("blobstore: ensure snapshots table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var blob []byte
	err := s.pool.QueryRow(ctx, `SELECT blob FROM snapshots WHERE key = $1;`, key).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("blobstore: select %s: %w", key, err)
	}
	return blob, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, blob []byte) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO snapshots (key, blob, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET blob = EXCLUDED.blob, updated_at = now();
`, key, blob)
	if err != nil {
		return fmt.Errorf("blobstore: upsert %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
