package store

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLite keeps one row per collection in a single database file.
type SQLite struct {
	writer *sql.DB
	reader *sql.DB
	logger *zap.Logger
}

func OpenSQLite(dbPath string, logger *zap.Logger) (*SQLite, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(FULL)", dbPath)

	writer, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)

	reader, err := sql.Open("sqlite", dsn)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(runtime.NumCPU())

	s := &SQLite{writer: writer, reader: reader, logger: logger}

	if err := s.migrate(context.Background()); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Debug("sqlite store opened", zap.String("path", dbPath))
	return s, nil
}

func (s *SQLite) Get(ctx context.Context, c Collection) ([]byte, bool, error) {
	var data string
	err := s.reader.QueryRowContext(ctx,
		`SELECT data FROM collections WHERE name = ?`, string(c)).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read collection %s: %w", c, err)
	}
	return []byte(data), true, nil
}

// GetAll reads every collection inside one read-only transaction so the
// documents all come from the same commit.
func (s *SQLite) GetAll(ctx context.Context) (map[Collection][]byte, error) {
	tx, err := s.reader.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin read tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT name, data FROM collections`)
	if err != nil {
		return nil, fmt.Errorf("read collections: %w", err)
	}
	defer rows.Close()

	docs := make(map[Collection][]byte)
	for rows.Next() {
		var name, data string
		if err := rows.Scan(&name, &data); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		docs[Collection(name)] = []byte(data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read collections: %w", err)
	}
	return docs, nil
}

func (s *SQLite) Put(ctx context.Context, docs map[Collection][]byte) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for c, doc := range docs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO collections (name, data, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
			string(c), string(doc), now,
		)
		if err != nil {
			return fmt.Errorf("write collection %s: %w", c, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	err1 := s.writer.Close()
	err2 := s.reader.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
