package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pactproof/backend/internal/api/dto"
	"github.com/pactproof/backend/internal/note"
)

// NoteHandler handles note drafting and PDF export requests.
type NoteHandler struct {
	*Base
	drafter *note.Drafter
	logger  *slog.Logger
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(drafter *note.Drafter, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		Base:    &Base{},
		drafter: drafter,
		logger:  logger,
	}
}

// Draft handles POST /draft_note - renders a markdown compliance note from
// a finished reconciliation.
func (h *NoteHandler) Draft(w http.ResponseWriter, r *http.Request) {
	var req dto.DraftNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}
	if req.Invoice == nil || req.Contract == nil || req.Reconcile == nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invoice, contract and reconcile are required"))
		return
	}

	h.logger.Info("Generating note", "invoice_number", req.Invoice.InvoiceNumber)

	markdown, err := h.drafter.Draft(req.Invoice, req.Contract, req.Reconcile)
	if err != nil {
		h.logger.Error("Note generation failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.DraftNoteResponse{
		Markdown: markdown,
		HTML:     nil,
	})
}

// ExportPDF handles POST /export_note_pdf - renders a drafted note as a
// downloadable PDF document.
func (h *NoteHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	var req dto.ExportNotePDFRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}
	if req.NoteText == "" {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("note_text is required"))
		return
	}

	h.logger.Info("Generating PDF for note", "invoice_number", req.InvoiceNumber)

	pdfBytes, err := note.ExportPDF(req.NoteText)
	if err != nil {
		h.logger.Error("PDF export failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	name := req.InvoiceNumber
	if name == "" {
		name = "note"
	}
	filename := fmt.Sprintf("compliance_report_%s_%s.pdf", name, time.Now().Format("20060102_150405"))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}
