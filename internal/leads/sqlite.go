package leads

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SQLiteSink stores leads in a local SQLite database.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and applies migrations.
func OpenSQLite(path string) (*SQLiteSink, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite lead sink needs a path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create lead directory %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	sink := &SQLiteSink{db: db}
	if err := sink.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return sink, nil
}

// Close closes the underlying database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func (s *SQLiteSink) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS leads (
			id TEXT PRIMARY KEY,
			received_at TEXT NOT NULL,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			company TEXT NOT NULL,
			context TEXT NOT NULL,
			preset TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_leads_received_at ON leads(received_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate leads: %w", err)
		}
	}
	return nil
}

// Submit implements Submitter.
func (s *SQLiteSink) Submit(ctx context.Context, lead Lead) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (id, received_at, name, email, phone, company, context, preset)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		lead.ID.String(),
		lead.ReceivedAt.Format(time.RFC3339Nano),
		lead.Name,
		lead.Contact.Email,
		lead.Contact.Phone,
		lead.Company,
		lead.Context,
		lead.Preset,
	)
	if err != nil {
		return fmt.Errorf("store lead %s: %w", lead.ID, err)
	}
	return nil
}

// Count returns the number of stored leads.
func (s *SQLiteSink) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
