package store

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *SQLite) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS collections (
			name       TEXT PRIMARY KEY CHECK (name IN ('products','sales','purchases','expenses','customers','customerPayments','suppliers','supplierPayments')),
			data       TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,

		// Collections hold JSON arrays only
		`CREATE TRIGGER IF NOT EXISTS trg_collections_array_insert
		BEFORE INSERT ON collections
		WHEN json_valid(NEW.data) = 0 OR json_type(NEW.data) != 'array'
		BEGIN
			SELECT RAISE(ABORT, 'collection data must be a JSON array');
		END`,
		`CREATE TRIGGER IF NOT EXISTS trg_collections_array_update
		BEFORE UPDATE OF data ON collections
		WHEN json_valid(NEW.data) = 0 OR json_type(NEW.data) != 'array'
		BEGIN
			SELECT RAISE(ABORT, 'collection data must be a JSON array');
		END`,

		`INSERT INTO schema_version (version) VALUES (1)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			n := len(stmt)
			if n > 60 {
				n = 60
			}
			return fmt.Errorf("exec %q: %w", stmt[:n], err)
		}
	}
	return nil
}
