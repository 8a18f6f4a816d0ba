package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/ldblocks"
)

// Compile-time interface verification.
var _ ldblocks.KVStore = (*OptionStore)(nil)

// OptionStore implements ldblocks.KVStore on the options table.
type OptionStore struct {
	db *DB
}

// NewOptionStore creates a new OptionStore.
func NewOptionStore(db *DB) *OptionStore {
	return &OptionStore{db: db}
}

// Get returns the value stored under key.
func (s *OptionStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM options WHERE name = ?
	`, key).Scan(&value)

	if err == sql.ErrNoRows {
		return nil, ldblocks.Errorf(ldblocks.ENOTFOUND, "option %q not found", key)
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores value under key.
func (s *OptionStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ldblocks.Errorf(ldblocks.EINVALID, "option name required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO options (name, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Delete removes key. Missing keys are ignored.
func (s *OptionStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM options WHERE name = ?`, key)
	return err
}
