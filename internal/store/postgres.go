package store

import (
	"database/sql"
	"fmt"
)

// PostgresStore keeps client state in a single key-value table, for
// venues that already run the shared Postgres used by other floor
// tooling. One row per key, last write wins.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS client_state (
			key TEXT PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return nil, fmt.Errorf("ensure client_state table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(key string) ([]byte, bool) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM client_state WHERE key = $1", key).Scan(&value)
	if err != nil {
		return nil, false
	}
	return value, true
}

func (s *PostgresStore) Set(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO client_state (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = now()`,
		key, value)
	return err
}

func (s *PostgresStore) Remove(key string) error {
	_, err := s.db.Exec("DELETE FROM client_state WHERE key = $1", key)
	return err
}

func (s *PostgresStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM client_state")
	return err
}
