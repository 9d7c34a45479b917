package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventease/internal/domain"
)

type blobStore struct {
	DB *sql.DB
}

// NewBlobStore returns a KeyValueStore backed by a single kv_blobs table.
// The data model is whole-document JSON, so one (key, value) table covers
// every storage key.
func NewBlobStore(db *sql.DB) domain.KeyValueStore {
	return &blobStore{DB: db}
}

// EnsureSchema creates the kv_blobs table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_blobs (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure kv_blobs schema: %w", err)
	}
	return nil
}

func (r *blobStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT value
		FROM kv_blobs
		WHERE key = $1
	`
	var value []byte
	err := r.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *blobStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_blobs (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
	_, err := r.DB.ExecContext(ctx, query, key, value)
	return err
}

func (r *blobStore) Delete(ctx context.Context, key string) error {
	query := `
		DELETE FROM kv_blobs
		WHERE key = $1
	`
	_, err := r.DB.ExecContext(ctx, query, key)
	return err
}
