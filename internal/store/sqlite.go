package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/abhigl/jobscout/internal/model"
)

// SQLiteStore is the local document store used when MongoDB is not
// configured, and the seen-id store for watch mode. Postings and insights are
// stored as JSON documents keyed by id.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS saved_jobs (
			id       TEXT PRIMARY KEY,
			doc      TEXT NOT NULL,
			saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS saved_insights (
			id       TEXT PRIMARY KEY,
			doc      TEXT NOT NULL,
			saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS seen_postings (
			posting_id TEXT PRIMARY KEY,
			first_seen DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating sqlite schema: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// SavePosting stores a posting as a JSON document, assigning a derived id
// when absent. Saving the same id again replaces the document.
func (s *SQLiteStore) SavePosting(ctx context.Context, p model.JobPosting) (string, error) {
	if p.ID == "" {
		p.ID = model.DerivePostingID(p)
	}
	doc, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding posting %s: %w", p.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO saved_jobs (id, doc) VALUES (?, ?)", p.ID, string(doc))
	if err != nil {
		return "", fmt.Errorf("saving posting %s: %w", p.ID, err)
	}
	return p.ID, nil
}

// ListPostings returns every saved posting.
func (s *SQLiteStore) ListPostings(ctx context.Context) ([]model.JobPosting, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT doc FROM saved_jobs ORDER BY saved_at")
	if err != nil {
		return nil, fmt.Errorf("listing postings: %w", err)
	}
	defer rows.Close()

	var out []model.JobPosting
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning posting: %w", err)
		}
		var p model.JobPosting
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("decoding posting: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePosting removes a posting by id.
func (s *SQLiteStore) DeletePosting(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM saved_jobs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting posting %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// SaveInsight stores an insight as a JSON document.
func (s *SQLiteStore) SaveInsight(ctx context.Context, in model.JobInsights) (string, error) {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	doc, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encoding insight %s: %w", in.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO saved_insights (id, doc) VALUES (?, ?)", in.ID, string(doc))
	if err != nil {
		return "", fmt.Errorf("saving insight %s: %w", in.ID, err)
	}
	return in.ID, nil
}

// ListInsights returns every saved insight.
func (s *SQLiteStore) ListInsights(ctx context.Context) ([]model.JobInsights, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT doc FROM saved_insights ORDER BY saved_at")
	if err != nil {
		return nil, fmt.Errorf("listing insights: %w", err)
	}
	defer rows.Close()

	var out []model.JobInsights
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning insight: %w", err)
		}
		var in model.JobInsights
		if err := json.Unmarshal([]byte(doc), &in); err != nil {
			return nil, fmt.Errorf("decoding insight: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// DeleteInsight removes an insight by id.
func (s *SQLiteStore) DeleteInsight(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM saved_insights WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting insight %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// HasSeen returns true if the given posting id has already been recorded.
func (s *SQLiteStore) HasSeen(postingID string) (bool, error) {
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM seen_postings WHERE posting_id = ?", postingID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking seen status for %s: %w", postingID, err)
	}
	return true, nil
}

// MarkSeen records a posting id as seen. Re-marking is a no-op.
func (s *SQLiteStore) MarkSeen(postingID string) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO seen_postings (posting_id) VALUES (?)", postingID)
	if err != nil {
		return fmt.Errorf("marking posting %s as seen: %w", postingID, err)
	}
	return nil
}

// Cleanup deletes seen entries older than the given duration.
func (s *SQLiteStore) Cleanup(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	_, err := s.db.Exec("DELETE FROM seen_postings WHERE first_seen < ?", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up seen postings older than %v: %w", olderThan, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
