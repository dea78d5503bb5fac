package storage

import (
	"time"

	"github.com/pactproof/backend/internal/domain/document"
)

// DocumentRecord tracks an uploaded source document on disk.
type DocumentRecord struct {
	ID          int64     `json:"id"`
	Filename    string    `json:"filename"`
	StoredPath  string    `json:"stored_path"`
	SizeBytes   int64     `json:"size_bytes"`
	ContentType string    `json:"content_type,omitempty"`
	DocType     string    `json:"doc_type,omitempty"` // "invoice", "contract", or empty until extracted
	UploadedAt  time.Time `json:"uploaded_at"`
}

// RunRecord is one persisted reconciliation run.
type RunRecord struct {
	ID            string    `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	ContractID    string    `json:"contract_id"`
	Pass          bool      `json:"pass"`
	MajorCount    int       `json:"major_count"`
	MinorCount    int       `json:"minor_count"`
	TotalCount    int       `json:"total_count"`
	CreatedAt     time.Time `json:"created_at"`

	// Findings are stored as JSON in a single column.
	Findings []document.Finding `json:"findings"`
}

// Stats returns aggregate reconciliation statistics.
type Stats struct {
	TotalRuns   int `json:"total_runs"`
	PassedRuns  int `json:"passed_runs"`
	FailedRuns  int `json:"failed_runs"`
	MajorTotal  int `json:"major_total"`
	MinorTotal  int `json:"minor_total"`
	TotalUploads int `json:"total_uploads"`
}
