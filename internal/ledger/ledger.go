// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger persists the outcome of every converted document in a
// SQLite database, so a corpus build can be audited after the fact: which
// files failed, and where each text was cut.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/refstrip/pkg/types"
)

// Ledger manages the outcome database.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at path, creating its parent
// directory and schema when needed.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			source_path TEXT PRIMARY KEY,
			output_path TEXT NOT NULL,
			status TEXT NOT NULL,
			text_length INTEGER NOT NULL,
			cutoff INTEGER NOT NULL,
			error TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores the outcome of a document, replacing any earlier row for the
// same source path.
func (l *Ledger) Record(doc types.Document) error {
	return l.RecordContext(context.Background(), doc)
}

// RecordContext is Record with a context.
func (l *Ledger) RecordContext(ctx context.Context, doc types.Document) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO documents (source_path, output_path, status, text_length, cutoff, error, converted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_path) DO UPDATE SET
			output_path = excluded.output_path,
			status = excluded.status,
			text_length = excluded.text_length,
			cutoff = excluded.cutoff,
			error = excluded.error,
			converted_at = excluded.converted_at`,
		doc.SourcePath, doc.OutputPath, string(doc.Status), doc.TextLength, doc.Cutoff,
		doc.Error, doc.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", doc.SourcePath, err)
	}
	return nil
}

// ListOptions filters List results.
type ListOptions struct {
	// Status restricts results to one outcome. Empty means all.
	Status types.ConversionStatus
	// Truncated restricts results to documents that were cut.
	Truncated bool
}

// List returns recorded documents ordered by source path.
func (l *Ledger) List(ctx context.Context, opts ListOptions) ([]types.Document, error) {
	query := `SELECT source_path, output_path, status, text_length, cutoff, error, converted_at
		FROM documents WHERE 1=1`
	var args []any
	if opts.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(opts.Status))
	}
	if opts.Truncated {
		query += ` AND cutoff >= 0`
	}
	query += ` ORDER BY source_path`

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var docs []types.Document
	for rows.Next() {
		var (
			doc         types.Document
			status      string
			errText     sql.NullString
			convertedAt string
		)
		if err := rows.Scan(&doc.SourcePath, &doc.OutputPath, &status, &doc.TextLength,
			&doc.Cutoff, &errText, &convertedAt); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		doc.Status = types.ConversionStatus(status)
		doc.Error = errText.String
		if t, err := time.Parse(time.RFC3339Nano, convertedAt); err == nil {
			doc.ConvertedAt = t
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Summary holds aggregate counts over the ledger.
type Summary struct {
	Converted int `json:"converted" yaml:"converted"`
	Failed    int `json:"failed" yaml:"failed"`
	Truncated int `json:"truncated" yaml:"truncated"`
}

// Total returns the number of recorded documents.
func (s Summary) Total() int {
	return s.Converted + s.Failed
}

// Summarize counts recorded documents by outcome.
func (l *Ledger) Summarize(ctx context.Context) (Summary, error) {
	var s Summary
	err := l.db.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(status = ?), 0),
			COALESCE(SUM(status = ?), 0),
			COALESCE(SUM(cutoff >= 0), 0)
		FROM documents`,
		string(types.ConversionDone), string(types.ConversionFailed),
	).Scan(&s.Converted, &s.Failed, &s.Truncated)
	if err != nil {
		return Summary{}, fmt.Errorf("summarizing ledger: %w", err)
	}
	return s, nil
}
