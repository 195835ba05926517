package website

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrStorageUnavailable marks any failure to reach the view-count database.
// Callers on the page-render path treat it as non-fatal: the page renders
// without a count.
var ErrStorageUnavailable = errors.New("website: view storage unavailable")

// ViewStore persists per-post view counts in SQLite.
type ViewStore struct {
	db *sql.DB
}

// NewViewStore opens (or creates) the view-count database at path, ensures
// the data directory exists, and creates the schema.
func NewViewStore(path string) (*ViewStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// WAL allows concurrent readers while an increment commits; the busy
	// timeout makes writers wait instead of failing with SQLITE_BUSY. Both
	// are set through the DSN so every pooled connection gets them.
	dsn := "file:" + path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &ViewStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *ViewStore) Close() error {
	return s.db.Close()
}

func (s *ViewStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS page_views (
    slug TEXT PRIMARY KEY,
    count INTEGER NOT NULL DEFAULT 0
);
`)
	return err
}

// Increment records one view of slug. The row is created on first view. The
// upsert is a single atomic statement, never a read-modify-write pair, so
// concurrent increments cannot lose updates.
func (s *ViewStore) Increment(ctx context.Context, slug string) error {
	if slug == "" {
		return errors.New("website: increment: empty slug")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO page_views (slug, count) VALUES (?, 1)
		 ON CONFLICT(slug) DO UPDATE SET count = count + 1`, slug)
	if err != nil {
		return fmt.Errorf("%w: increment %q: %v", ErrStorageUnavailable, slug, err)
	}
	return nil
}

// Count returns the current view count for slug. A slug that has never been
// viewed is not an error; it reads as zero.
func (s *ViewStore) Count(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT count FROM page_views WHERE slug = ?`, slug).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: count %q: %v", ErrStorageUnavailable, slug, err)
	}
	return count, nil
}
