// Package store owns the canonical backlog. It keeps the whole backlog in
// memory, writes the complete document to SQLite after every mutation and
// reads it back on open.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sadopc/backlogr/internal/backlog"
	"github.com/sadopc/backlogr/internal/log"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// documentKey is the row the backlog document lives under.
const documentKey = "gameData"

// Store is safe for concurrent use.
type Store struct {
	db  *sql.DB
	log *log.Logger
	now func() time.Time

	mu   sync.RWMutex
	data backlog.Backlog
}

type Option func(*Store)

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l.Named("store") }
}

// WithClock replaces time.Now, which is only used to bound valid years and
// stamp writes.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New opens (or creates) the SQLite database at dbPath, runs migrations and
// loads the saved backlog.
func New(dbPath string, opts ...Option) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, log: log.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s.Load()
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory(opts ...Option) (*Store, error) {
	return New(":memory:", opts...)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS documents (
		key         TEXT PRIMARY KEY,
		value       TEXT NOT NULL,
		updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('profile_name',     'Player'),
		('default_platform', 'steam'),
		('export_dir',       '');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// Load replaces the in-memory backlog with the saved document. A missing or
// unreadable document leaves an empty backlog; neither is reported to the
// caller.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = backlog.New()

	var raw string
	err := s.db.QueryRow(`SELECT value FROM documents WHERE key = ?`, documentKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		s.log.Debugw("no saved backlog, starting empty")
		return
	}
	if err != nil {
		s.log.WithError(err).Warnw("read saved backlog, starting empty")
		return
	}

	b, rep, err := backlog.ParseDocument([]byte(raw))
	if err != nil {
		s.log.WithError(err).Warnw("saved backlog is malformed, starting empty")
		return
	}
	if rep.Skipped > 0 {
		s.log.Warnw("dropped unreadable records from saved backlog", "skipped", rep.Skipped)
	}
	s.data = b
	s.log.Debugw("loaded backlog", "games", rep.Games, "wishlist", rep.Wishlist)
}

// Persist writes the current backlog in full.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(s.data)
}

func (s *Store) write(b backlog.Backlog) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode backlog: %w", err)
	}
	now := s.now().UTC().Format(time.RFC3339)

	tx, err := s.db.Begin()
	if err != nil {
		s.log.Errorw("persist backlog", "error", err)
		return fmt.Errorf("begin persist: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO documents (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		documentKey, string(data), now,
	)
	if err != nil {
		s.log.Errorw("persist backlog", "error", err)
		return fmt.Errorf("persist backlog: %w", err)
	}
	if err := tx.Commit(); err != nil {
		s.log.Errorw("commit backlog", "error", err)
		return fmt.Errorf("commit backlog: %w", err)
	}
	return nil
}

// update applies fn to a copy of the backlog, persists the copy and only
// then makes it current. fn returns false for a no-op, which skips the
// write.
func (s *Store) update(fn func(b *backlog.Backlog) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	if !fn(&next) {
		return nil
	}
	if err := s.write(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// Snapshot returns a copy of the current backlog that the caller may keep.
func (s *Store) Snapshot() backlog.Backlog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// CurrentYear is the year used to bound valid play years.
func (s *Store) CurrentYear() int {
	return s.now().Year()
}
