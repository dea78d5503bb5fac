package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pactproof/backend/internal/api/dto"
	"github.com/pactproof/backend/internal/api/handlers"
	"github.com/pactproof/backend/internal/domain/document"
	"github.com/pactproof/backend/internal/note"
)

func TestNoteHandler_Draft(t *testing.T) {
	handler := handlers.NewNoteHandler(note.NewDrafter(), testLogger())

	t.Run("renders markdown note", func(t *testing.T) {
		body, err := json.Marshal(dto.DraftNoteRequest{
			Invoice:  testInvoice(),
			Contract: testContract(),
			Reconcile: &document.ReconcileResult{
				Summary:  document.Summary{Pass: true},
				Findings: []document.Finding{},
			},
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/draft_note", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Draft(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.DraftNoteResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))

		assert.Contains(t, response.Markdown, "INV-100")
		assert.Nil(t, response.HTML)
	})

	t.Run("rejects missing reconcile result", func(t *testing.T) {
		body, err := json.Marshal(dto.DraftNoteRequest{
			Invoice:  testInvoice(),
			Contract: testContract(),
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/draft_note", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Draft(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestNoteHandler_ExportPDF(t *testing.T) {
	handler := handlers.NewNoteHandler(note.NewDrafter(), testLogger())

	t.Run("returns a PDF attachment", func(t *testing.T) {
		body, err := json.Marshal(dto.ExportNotePDFRequest{
			NoteText:      "# Compliance Note\n\nAll checks passed.",
			InvoiceNumber: "INV-100",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/export_note_pdf", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.ExportPDF(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

		disposition := rec.Header().Get("Content-Disposition")
		assert.True(t, strings.HasPrefix(disposition, "attachment; filename=compliance_report_INV-100_"))
		assert.True(t, strings.HasSuffix(disposition, ".pdf"))

		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
	})

	t.Run("falls back to note in filename", func(t *testing.T) {
		body, err := json.Marshal(dto.ExportNotePDFRequest{NoteText: "hello"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/export_note_pdf", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.ExportPDF(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "compliance_report_note_")
	})

	t.Run("rejects empty note text", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/export_note_pdf", bytes.NewReader([]byte(`{}`)))
		rec := httptest.NewRecorder()

		handler.ExportPDF(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
