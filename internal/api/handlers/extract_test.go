package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pactproof/backend/internal/api/dto"
	"github.com/pactproof/backend/internal/api/handlers"
	"github.com/pactproof/backend/internal/extraction"
	"github.com/pactproof/backend/internal/infrastructure/storage"
)

func newExtractHandler(t *testing.T, repo *storage.MockRepository) *handlers.ExtractHandler {
	extractor := extraction.NewStubExtractor(testLogger())
	return handlers.NewExtractHandler(repo, extractor, t.TempDir(), "http://localhost:8000", nil, testLogger())
}

func TestExtractHandler_Invoice(t *testing.T) {
	t.Run("extracts invoice from upload", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newExtractHandler(t, repo)

		body, contentType := multipartBody(t, "file", "invoice.pdf", []byte("pdf bytes"))
		req := httptest.NewRequest(http.MethodPost, "/parse_extract/invoice", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handler.Invoice(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.ExtractionResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))

		require.NotNil(t, response.Invoice)
		assert.Nil(t, response.Contract)
		assert.Equal(t, "INV-001", response.Invoice.InvoiceNumber)
		assert.NotEmpty(t, response.Meta)
		assert.Equal(t, "http://localhost:8000/uploads/invoice.pdf", response.FileURL)

		record, err := repo.GetDocument("invoice.pdf")
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, "invoice", record.DocType)
	})

	t.Run("rejects missing file field", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newExtractHandler(t, repo)

		req := httptest.NewRequest(http.MethodPost, "/parse_extract/invoice", bytes.NewReader(nil))
		rec := httptest.NewRecorder()

		handler.Invoice(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestExtractHandler_Contract(t *testing.T) {
	t.Run("extracts contract from upload", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newExtractHandler(t, repo)

		body, contentType := multipartBody(t, "file", "contract.pdf", []byte("pdf bytes"))
		req := httptest.NewRequest(http.MethodPost, "/parse_extract/contract", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handler.Contract(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.ExtractionResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))

		require.NotNil(t, response.Contract)
		assert.Nil(t, response.Invoice)
		assert.Equal(t, "SOW-001", response.Contract.ContractID)
	})

	t.Run("decodes JSON upload directly", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newExtractHandler(t, repo)

		contractJSON := []byte(`{
			"vendor_name": "Consulting LLC",
			"client_name": "Acme Corp",
			"contract_id": "SOW-200",
			"line_items": [
				{"description": "Consulting services", "unit_price": 100.0, "max_quantity": 20}
			]
		}`)

		body, contentType := multipartBody(t, "file", "contract.json", contractJSON)
		req := httptest.NewRequest(http.MethodPost, "/parse_extract/contract", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handler.Contract(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.ExtractionResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))

		require.NotNil(t, response.Contract)
		assert.Equal(t, "SOW-200", response.Contract.ContractID)
		assert.Empty(t, response.Meta)
		assert.Equal(t, 1, response.Parse.Pages)

		// JSON uploads get the documented defaults filled in.
		assert.Equal(t, "USD", response.Contract.Currency)
		assert.Equal(t, "Net 30", response.Contract.NetTerms)
		assert.InDelta(t, 2.0, response.Contract.AllowedVariancePct, 1e-9)
	})

	t.Run("rejects malformed JSON upload", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newExtractHandler(t, repo)

		body, contentType := multipartBody(t, "file", "contract.json", []byte("{not json"))
		req := httptest.NewRequest(http.MethodPost, "/parse_extract/contract", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handler.Contract(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var apiErr dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
		assert.Equal(t, dto.ErrCodeBadRequest, apiErr.Code)
	})
}
