package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore persists revisions as JSON blobs in a single SQLite table.
type SQLiteStore struct {
	db    *sql.DB
	limit int
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string, opts ...Option) (*SQLiteStore, error) {
	if path == "" {
		path = "flightdesk.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers; SQLite allows one at a time anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS revisions (
		seq       INTEGER PRIMARY KEY AUTOINCREMENT,
		id        TEXT NOT NULL UNIQUE,
		loaded_at INTEGER NOT NULL,
		payload   BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create revisions table: %w", err)
	}
	o := buildOptions(opts)
	return &SQLiteStore{db: db, limit: o.historySize}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, rev Revision) error {
	if rev.ID == "" {
		return ErrInvalidID
	}
	payload, err := json.Marshal(rev.Raw)
	if err != nil {
		return fmt.Errorf("marshal revision %s: %w", rev.ID, err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO revisions (id, loaded_at, payload) VALUES (?, ?, ?)`,
		rev.ID, rev.LoadedAt.UnixNano(), payload); err != nil {
		return fmt.Errorf("insert revision %s: %w", rev.ID, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM revisions WHERE seq NOT IN (SELECT seq FROM revisions ORDER BY seq DESC LIMIT ?)`,
		s.limit); err != nil {
		return fmt.Errorf("prune revisions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) scan(row *sql.Row) (Revision, error) {
	var (
		rev      Revision
		loadedAt int64
		payload  []byte
	)
	if err := row.Scan(&rev.ID, &loadedAt, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Revision{}, ErrNotFound
		}
		return Revision{}, fmt.Errorf("scan revision: %w", err)
	}
	if err := json.Unmarshal(payload, &rev.Raw); err != nil {
		return Revision{}, fmt.Errorf("unmarshal revision %s: %w", rev.ID, err)
	}
	rev.LoadedAt = time.Unix(0, loadedAt).UTC()
	return rev, nil
}

func (s *SQLiteStore) Current(ctx context.Context) (Revision, error) {
	return s.scan(s.db.QueryRowContext(ctx,
		`SELECT id, loaded_at, payload FROM revisions ORDER BY seq DESC LIMIT 1`))
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Revision, error) {
	return s.scan(s.db.QueryRowContext(ctx,
		`SELECT id, loaded_at, payload FROM revisions WHERE id = ?`, id))
}

func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM revisions`).Scan(&n); err != nil {
		return 0
	}
	return n
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
