// Package storage provides SQLite persistence for uploaded documents and
// reconciliation runs.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pactproof/backend/internal/domain/document"
)

// Storage provides SQLite database access.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.createSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT NOT NULL UNIQUE,
		stored_path TEXT NOT NULL,
		size_bytes INTEGER NOT NULL,
		content_type TEXT,
		doc_type TEXT,
		uploaded_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS reconcile_runs (
		id TEXT PRIMARY KEY,
		invoice_number TEXT NOT NULL,
		contract_id TEXT NOT NULL,
		pass BOOLEAN NOT NULL,
		major_count INTEGER NOT NULL,
		minor_count INTEGER NOT NULL,
		total_count INTEGER NOT NULL,
		findings_json TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON reconcile_runs(created_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveDocument saves or updates the record for an uploaded file
func (s *Storage) SaveDocument(record *DocumentRecord) error {
	query := `
	INSERT OR REPLACE INTO documents
	(filename, stored_path, size_bytes, content_type, doc_type, uploaded_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(query,
		record.Filename,
		record.StoredPath,
		record.SizeBytes,
		record.ContentType,
		record.DocType,
		record.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		record.ID = id
	}
	return nil
}

// GetDocument retrieves a record by stored filename
func (s *Storage) GetDocument(filename string) (*DocumentRecord, error) {
	query := `
	SELECT id, filename, stored_path, size_bytes, content_type, doc_type, uploaded_at
	FROM documents WHERE filename = ?
	`

	record := &DocumentRecord{}
	err := s.db.QueryRow(query, filename).Scan(
		&record.ID,
		&record.Filename,
		&record.StoredPath,
		&record.SizeBytes,
		&record.ContentType,
		&record.DocType,
		&record.UploadedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %q: %w", filename, err)
	}
	return record, nil
}

// ListDocuments returns the most recently uploaded documents
func (s *Storage) ListDocuments(limit int) ([]*DocumentRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT id, filename, stored_path, size_bytes, content_type, doc_type, uploaded_at
	FROM documents ORDER BY uploaded_at DESC LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var records []*DocumentRecord
	for rows.Next() {
		record := &DocumentRecord{}
		if err := rows.Scan(
			&record.ID,
			&record.Filename,
			&record.StoredPath,
			&record.SizeBytes,
			&record.ContentType,
			&record.DocType,
			&record.UploadedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// SaveRun persists a completed reconciliation run
func (s *Storage) SaveRun(record *RunRecord) error {
	findingsJSON, err := json.Marshal(record.Findings)
	if err != nil {
		return fmt.Errorf("failed to marshal findings: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO reconcile_runs
	(id, invoice_number, contract_id, pass, major_count, minor_count, total_count, findings_json, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		record.ID,
		record.InvoiceNumber,
		record.ContractID,
		record.Pass,
		record.MajorCount,
		record.MinorCount,
		record.TotalCount,
		string(findingsJSON),
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID
func (s *Storage) GetRun(id string) (*RunRecord, error) {
	query := `
	SELECT id, invoice_number, contract_id, pass, major_count, minor_count, total_count, findings_json, created_at
	FROM reconcile_runs WHERE id = ?
	`

	record := &RunRecord{}
	var findingsJSON string
	err := s.db.QueryRow(query, id).Scan(
		&record.ID,
		&record.InvoiceNumber,
		&record.ContractID,
		&record.Pass,
		&record.MajorCount,
		&record.MinorCount,
		&record.TotalCount,
		&findingsJSON,
		&record.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %q: %w", id, err)
	}

	if findingsJSON != "" {
		if err := json.Unmarshal([]byte(findingsJSON), &record.Findings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal findings for run %q: %w", id, err)
		}
	}
	if record.Findings == nil {
		record.Findings = []document.Finding{}
	}
	return record, nil
}

// ListRuns returns the most recent runs, newest first
func (s *Storage) ListRuns(limit int) ([]*RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT id FROM reconcile_runs ORDER BY created_at DESC, id LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	records := make([]*RunRecord, 0, len(ids))
	for _, id := range ids {
		record, err := s.GetRun(id)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// GetStats returns aggregate statistics
func (s *Storage) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(`
	SELECT COUNT(*),
	       COALESCE(SUM(CASE WHEN pass THEN 1 ELSE 0 END), 0),
	       COALESCE(SUM(major_count), 0),
	       COALESCE(SUM(minor_count), 0)
	FROM reconcile_runs
	`).Scan(&stats.TotalRuns, &stats.PassedRuns, &stats.MajorTotal, &stats.MinorTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to compute run stats: %w", err)
	}
	stats.FailedRuns = stats.TotalRuns - stats.PassedRuns

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&stats.TotalUploads); err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}

	return stats, nil
}
