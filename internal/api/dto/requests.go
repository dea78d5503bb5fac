package dto

import "github.com/pactproof/backend/internal/domain/document"

// ReconcileRequest carries the two documents to reconcile.
type ReconcileRequest struct {
	Invoice  *document.Invoice  `json:"invoice"`
	Contract *document.Contract `json:"contract"`
}

// DraftNoteRequest carries a finished reconciliation plus its source
// documents for note generation.
type DraftNoteRequest struct {
	Invoice   *document.Invoice         `json:"invoice"`
	Contract  *document.Contract        `json:"contract"`
	Reconcile *document.ReconcileResult `json:"reconcile"`
}

// ExportNotePDFRequest carries a drafted note for PDF export.
type ExportNotePDFRequest struct {
	NoteText      string `json:"note_text"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
}
