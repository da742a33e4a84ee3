package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteProfileStore keeps profile documents in a local SQLite file. It is
// the default store for single-node deployments and the CLI.
type SQLiteProfileStore struct {
	documentProfileStore
	db *sql.DB
}

var _ ProfileStore = (*SQLiteProfileStore)(nil)

// NewSQLiteProfileStore opens (or creates) the database at path.
func NewSQLiteProfileStore(path string) (*SQLiteProfileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer

	if err := initSQLiteSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}

	s := &SQLiteProfileStore{db: db}
	s.documentProfileStore = documentProfileStore{backend: s}
	return s, nil
}

func initSQLiteSchema(db *sql.DB) error {
	for _, table := range []string{collectionProfiles, collectionFiles} {
		_, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + table + ` (
			user_id    TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteProfileStore) updateDocument(ctx context.Context, collection, userID string, fn func([]byte) ([]byte, error)) ([]byte, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	var current []byte
	err = tx.QueryRowContext(ctx, `SELECT data FROM `+collection+` WHERE user_id = ?`, userID).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlite: read %s: %w", collection, err)
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO `+collection+` (user_id, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		userID, string(next), now,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: write %s: %w", collection, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: commit: %w", err)
	}
	return next, nil
}

func (s *SQLiteProfileStore) getDocument(ctx context.Context, collection, userID string) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM `+collection+` WHERE user_id = ?`, userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: read %s: %w", collection, err)
	}
	return []byte(data), nil
}

// Close closes the database.
func (s *SQLiteProfileStore) Close() error {
	return s.db.Close()
}
