// Package blob stores large binary artifacts (voice notes, avatars, images)
// outside the JSON record store, in a single SQLite table.
package blob

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/manav03panchal/chronos/internal/logging"
)

// Scheme prefixes every URI handed out by the store.
const Scheme = "blob://"

// Memory opens a private in-memory database.
const Memory = ":memory:"

// Store is the blob database.
type Store struct {
	db   *sql.DB
	path string
}

// Usage summarizes the stored payloads.
type Usage struct {
	Count int   `json:"count"`
	Bytes int64 `json:"bytes"`
}

// DefaultPath returns the default blob database path following XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, "chronos", "blobs.db")
}

// Open opens (or creates) the blob database at path. Memory opens a
// throwaway database.
func Open(path string) (*Store, error) {
	if path != Memory {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create blob dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == Memory {
		// Each connection to :memory: is its own database.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, path: path}
	if err := s.configure(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) configure() error {
	stmts := []string{
		"PRAGMA busy_timeout=5000",
		`CREATE TABLE IF NOT EXISTS blobs (
			id         TEXT PRIMARY KEY,
			data       BLOB NOT NULL,
			size       INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
	}
	if s.path != Memory {
		stmts = append([]string{"PRAGMA journal_mode=WAL", "PRAGMA synchronous=NORMAL"}, stmts...)
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("configure blob store: %w", err)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.path
}

// URI returns the URI of the blob with the given id.
func URI(id string) string {
	return Scheme + id
}

// ID extracts the blob id from uri. ok is false for foreign URIs.
func ID(uri string) (id string, ok bool) {
	if !strings.HasPrefix(uri, Scheme) {
		return "", false
	}
	id = strings.TrimPrefix(uri, Scheme)
	return id, id != ""
}

// IsURI reports whether s is a blob URI.
func IsURI(s string) bool {
	_, ok := ID(s)
	return ok
}

// Put stores data under a fresh id and returns its URI.
func (s *Store) Put(ctx context.Context, data []byte) (string, error) {
	id := uuid.New().String()
	start := time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blobs (id, data, size, created_at) VALUES (?, ?, ?, ?)`,
		id, data, len(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", errors.NewSystemErrorWithOp("blob put", "store blob", errors.WrapDiskFull(err, "put", s.path))
	}
	logging.LogOperation(ctx, "blob put", start,
		logging.KeyBlobID, id, logging.KeyBytes, humanize.Bytes(uint64(len(data))))
	return URI(id), nil
}

// Get returns the payload of uri. ok is false when the URI is foreign or
// the blob does not exist; a miss is never an error.
func (s *Store) Get(ctx context.Context, uri string) (data []byte, ok bool, err error) {
	id, ok := ID(uri)
	if !ok {
		return nil, false, nil
	}
	err = s.db.QueryRowContext(ctx, `SELECT data FROM blobs WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.NewSystemErrorWithOp("blob get", "load blob "+id, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, true, nil
}

// Exists reports whether uri resolves to a stored payload.
func (s *Store) Exists(ctx context.Context, uri string) (bool, error) {
	id, ok := ID(uri)
	if !ok {
		return false, nil
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blobs WHERE id = ?`, id).Scan(&n); err != nil {
		return false, errors.NewSystemErrorWithOp("blob exists", "probe blob "+id, err)
	}
	return n > 0, nil
}

// Remove deletes the blob behind uri. Foreign or missing URIs are a no-op.
func (s *Store) Remove(ctx context.Context, uri string) error {
	id, ok := ID(uri)
	if !ok {
		return nil
	}
	start := time.Now()
	res, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE id = ?`, id)
	if err != nil {
		return errors.NewSystemErrorWithOp("blob remove", "delete blob "+id, err)
	}
	n, _ := res.RowsAffected()
	logging.LogOperation(ctx, "blob remove", start, logging.KeyBlobID, id, logging.KeyCount, n)
	return nil
}

// Usage reports how many blobs are stored and their total size.
func (s *Store) Usage(ctx context.Context) (Usage, error) {
	var u Usage
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(size), 0) FROM blobs`).Scan(&u.Count, &u.Bytes)
	if err != nil {
		return Usage{}, errors.NewSystemErrorWithOp("blob usage", "summarize blobs", err)
	}
	return u, nil
}

// String renders the usage for humans.
func (u Usage) String() string {
	return fmt.Sprintf("%d blobs, %s", u.Count, humanize.Bytes(uint64(u.Bytes)))
}
