package dto

import (
	"github.com/pactproof/backend/internal/domain/document"
	"github.com/pactproof/backend/internal/infrastructure/storage"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	AppMode string `json:"app_mode"`
	Version string `json:"version"`
}

// UploadResponse is returned after a successful file upload.
type UploadResponse struct {
	Filename string `json:"filename"`
	FileURL  string `json:"file_url"`
	Size     int64  `json:"size"`
}

// ExtractionResponse is returned by the parse/extract endpoints.
// Exactly one of Invoice and Contract is set, depending on the endpoint.
type ExtractionResponse struct {
	Invoice  *document.Invoice         `json:"invoice"`
	Contract *document.Contract        `json:"contract"`
	Meta     []document.ExtractionMeta `json:"meta"`
	Parse    document.ParseResult      `json:"parse"`
	FileURL  string                    `json:"file_url"`
	FilePath string                    `json:"file_path"`
}

// DraftNoteResponse is returned by the note drafting endpoint.
type DraftNoteResponse struct {
	Markdown string  `json:"markdown"`
	HTML     *string `json:"html"`
}

// RunListResponse is returned when listing reconciliation runs.
type RunListResponse struct {
	Runs  []*storage.RunRecord `json:"runs"`
	Count int                  `json:"count"`
}
