package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	_ "modernc.org/sqlite"
)

// Bundle is one saved host slot.
type Bundle struct {
	Key      string
	Revision string
	Data     []byte
	SavedAt  time.Time
}

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS bundles (
  key TEXT PRIMARY KEY,
  revision TEXT NOT NULL,
  data BLOB NOT NULL,
  saved_at TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable runs a write in a rolled-back transaction.
func (r *Repository) CheckWritable(ctx context.Context) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = multierr.Append(err, fmt.Errorf("rollback write check: %w", rbErr))
		}
	}()
	if _, err := tx.ExecContext(ctx, `
INSERT INTO bundles (key, revision, data, saved_at) VALUES ('__write_check__', '', x'', '')
ON CONFLICT(key) DO NOTHING
`); err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	return nil
}

// SaveBundle replaces the bundle stored under key and returns its new
// revision id.
func (r *Repository) SaveBundle(ctx context.Context, key string, data []byte) (string, error) {
	revision := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if data == nil {
		data = []byte{}
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO bundles (key, revision, data, saved_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  revision=excluded.revision,
  data=excluded.data,
  saved_at=excluded.saved_at
`, key, revision, data, now)
	if err != nil {
		return "", fmt.Errorf("save bundle %s: %w", key, err)
	}
	return revision, nil
}

// LoadBundle returns the bundle for key; ok is false when none was saved.
func (r *Repository) LoadBundle(ctx context.Context, key string) (Bundle, bool, error) {
	var (
		b       Bundle
		savedAt string
	)
	err := r.db.QueryRowContext(ctx, `
SELECT key, revision, data, saved_at
FROM bundles
WHERE key = ?
`, key).Scan(&b.Key, &b.Revision, &b.Data, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Bundle{}, false, nil
	}
	if err != nil {
		return Bundle{}, false, fmt.Errorf("load bundle %s: %w", key, err)
	}
	b.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return Bundle{}, false, fmt.Errorf("parse bundle saved_at %q: %w", savedAt, err)
	}
	return b, true, nil
}

func (r *Repository) DeleteBundle(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bundles WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete bundle %s: %w", key, err)
	}
	return nil
}
