// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local SQLite log of upload receipts and
// conversion attempts. The log is informational: recording failures are
// reported to the caller but operations never fail because of them.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docmerge/pkg/types"
)

const dbFile = "docmerge.db"

// Outcome labels how a conversion attempt ended.
type Outcome string

const (
	OutcomeOK     Outcome = "ok"
	OutcomeFailed Outcome = "failed"
)

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// Conversion is one recorded conversion attempt.
type Conversion struct {
	ID        int64
	Format    types.Format
	FileCount int
	Artifact  string
	Outcome   Outcome
	Error     string
	CreatedAt time.Time
}

// NewStore opens or creates the history database under cfg.Dir,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS uploads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			object_key TEXT NOT NULL,
			name TEXT NOT NULL,
			size INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			format TEXT NOT NULL,
			file_count INTEGER NOT NULL,
			artifact TEXT,
			outcome TEXT NOT NULL,
			error TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_uploads_user_id ON uploads(user_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordUpload logs one persisted object.
func (s *Store) RecordUpload(ctx context.Context, userID, objectKey, name string, size int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO uploads (user_id, object_key, name, size, created_at) VALUES (?, ?, ?, ?, ?)`,
		userID, objectKey, name, size, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording upload: %w", err)
	}
	return nil
}

// RecordConversion logs one conversion attempt. artifact is the saved
// path on success; errMsg carries the failure text otherwise.
func (s *Store) RecordConversion(ctx context.Context, format types.Format, fileCount int, artifact string, outcome Outcome, errMsg string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (format, file_count, artifact, outcome, error, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		string(format), fileCount, artifact, string(outcome), errMsg, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording conversion: %w", err)
	}
	return nil
}

// Recent returns the latest conversion attempts, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Conversion, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, format, file_count, artifact, outcome, error, created_at
		 FROM conversions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var out []Conversion
	for rows.Next() {
		var c Conversion
		var format, outcome, created string
		var artifact, errMsg sql.NullString
		if err := rows.Scan(&c.ID, &format, &c.FileCount, &artifact, &outcome, &errMsg, &created); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		c.Format = types.Format(format)
		c.Outcome = Outcome(outcome)
		c.Artifact = artifact.String
		c.Error = errMsg.String
		if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
			c.CreatedAt = t
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
