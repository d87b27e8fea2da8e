// Package sqlite persists the session and the local knowledge base in a
// single SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/store"
)

// Store implements store.Persister using SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := path + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		payload TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS prds (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		payload TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS activity (
		position INTEGER PRIMARY KEY,
		kind TEXT NOT NULL,
		title TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS kb_files (
		kb_id TEXT NOT NULL,
		name TEXT NOT NULL,
		mime TEXT NOT NULL,
		size INTEGER NOT NULL,
		content TEXT NOT NULL,
		uploaded_at INTEGER NOT NULL,
		PRIMARY KEY (kb_id, name)
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the persisted session. It returns nil when nothing was saved.
func (s *Store) Load(ctx context.Context) (*store.Snapshot, error) {
	docs, err := loadPayloads[core.UploadedDocumentProfile](ctx, s.db, "documents")
	if err != nil {
		return nil, err
	}
	prds, err := loadPayloads[core.GeneratedPRD](ctx, s.db, "prds")
	if err != nil {
		return nil, err
	}
	activity, err := s.loadActivity(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 && len(prds) == 0 && len(activity) == 0 {
		return nil, nil
	}
	return &store.Snapshot{Documents: docs, PRDs: prds, Activity: activity}, nil
}

func loadPayloads[T any](ctx context.Context, db *sql.DB, table string) ([]T, error) {
	rows, err := db.QueryContext(ctx, "SELECT payload FROM "+table+" ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}
		var item T
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, fmt.Errorf("decode %s row: %w", table, err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *Store) loadActivity(ctx context.Context) ([]core.ActivityEntry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT kind, title, created_at FROM activity ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	out := []core.ActivityEntry{}
	for rows.Next() {
		var e core.ActivityEntry
		var kind string
		var createdAt int64
		if err := rows.Scan(&kind, &e.Title, &createdAt); err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		e.Kind = core.ActivityKind(kind)
		e.Timestamp = time.UnixMilli(createdAt).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// Save replaces the persisted session with snap in one transaction.
func (s *Store) Save(ctx context.Context, snap store.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"documents", "prds", "activity"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, d := range snap.Documents {
		if err := insertPayload(ctx, tx, "documents", d.ID, i, d); err != nil {
			return err
		}
	}
	for i, p := range snap.PRDs {
		if err := insertPayload(ctx, tx, "prds", p.ID, i, p); err != nil {
			return err
		}
	}
	for i, e := range snap.Activity {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO activity (position, kind, title, created_at) VALUES (?, ?, ?, ?)",
			i, string(e.Kind), e.Title, e.Timestamp.UnixMilli())
		if err != nil {
			return fmt.Errorf("insert activity: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertPayload(ctx context.Context, tx *sql.Tx, table, id string, position int, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", table, id, err)
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO "+table+" (id, position, payload) VALUES (?, ?, ?)",
		id, position, string(payload))
	if err != nil {
		return fmt.Errorf("insert %s %s: %w", table, id, err)
	}
	return nil
}
