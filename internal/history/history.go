// Package history records delivered prompts in a local SQLite database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS deliveries (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp_ns  INTEGER NOT NULL,
    session_id    TEXT,
    target_title  TEXT,
    prompt        TEXT NOT NULL,
    outcome       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_deliveries_timestamp ON deliveries(timestamp_ns);
`

// Outcome values recorded per delivery.
const (
	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
)

// Delivery is one recorded prompt handoff.
type Delivery struct {
	ID          int64
	Timestamp   time.Time
	SessionID   string
	TargetTitle string
	Prompt      string
	Outcome     string
}

// Store is the delivered-prompt database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append records a delivery.
func (s *Store) Append(d *Delivery) (int64, error) {
	ts := d.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	result, err := s.db.Exec(`
		INSERT INTO deliveries (timestamp_ns, session_id, target_title, prompt, outcome)
		VALUES (?, ?, ?, ?, ?)`,
		ts.UnixNano(), d.SessionID, d.TargetTitle, d.Prompt, d.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("insert delivery: %w", err)
	}
	return result.LastInsertId()
}

// Recent returns the newest deliveries, most recent first.
func (s *Store) Recent(limit int) ([]Delivery, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp_ns, session_id, target_title, prompt, outcome
		FROM deliveries ORDER BY timestamp_ns DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer rows.Close()

	var out []Delivery
	for rows.Next() {
		var d Delivery
		var ns int64
		if err := rows.Scan(&d.ID, &ns, &d.SessionID, &d.TargetTitle, &d.Prompt, &d.Outcome); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d.Timestamp = time.Unix(0, ns)
		out = append(out, d)
	}
	return out, rows.Err()
}

// Prune deletes everything but the newest keep deliveries.
func (s *Store) Prune(keep int) (int64, error) {
	result, err := s.db.Exec(`
		DELETE FROM deliveries WHERE id NOT IN (
			SELECT id FROM deliveries ORDER BY timestamp_ns DESC, id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune deliveries: %w", err)
	}
	return result.RowsAffected()
}
