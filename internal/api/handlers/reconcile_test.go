package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pactproof/backend/internal/api/dto"
	"github.com/pactproof/backend/internal/api/handlers"
	"github.com/pactproof/backend/internal/domain/document"
	"github.com/pactproof/backend/internal/domain/reconciler"
	"github.com/pactproof/backend/internal/infrastructure/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testInvoice() *document.Invoice {
	return &document.Invoice{
		ClientName:    "Acme Corp",
		SellerName:    "Consulting LLC",
		InvoiceNumber: "INV-100",
		InvoiceDate:   "2025-01-15",
		Currency:      "USD",
		NetTerms:      "Net 30",
		Items: []document.InvoiceLine{
			{Description: "Consulting services", Quantity: 10, UnitPrice: 100.0, TotalPrice: 1000.0},
		},
		Subtotal: document.Subtotal{Total: 1000.0},
	}
}

func testContract() *document.Contract {
	return &document.Contract{
		VendorName: "Consulting LLC",
		ClientName: "Acme Corp",
		ContractID: "SOW-100",
		Currency:   "USD",
		NetTerms:   "Net 30",
		LineItems: []document.ContractLine{
			{Description: "Consulting services", UnitPrice: 100.0, MaxQuantity: 20},
		},
	}
}

func TestReconcileHandler(t *testing.T) {
	newHandler := func(repo *storage.MockRepository) *handlers.ReconcileHandler {
		engine := reconciler.NewEngine(reconciler.DefaultConfig())
		return handlers.NewReconcileHandler(repo, engine, nil, testLogger())
	}

	post := func(body interface{}) *http.Request {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		return httptest.NewRequest(http.MethodPost, "/reconcile", bytes.NewReader(data))
	}

	t.Run("clean invoice passes", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newHandler(repo)

		rec := httptest.NewRecorder()
		handler.Reconcile(rec, post(dto.ReconcileRequest{
			Invoice:  testInvoice(),
			Contract: testContract(),
		}))

		assert.Equal(t, http.StatusOK, rec.Code)

		var result document.ReconcileResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))

		assert.True(t, result.Summary.Pass)
		assert.Empty(t, result.Findings)
	})

	t.Run("persists run record", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newHandler(repo)

		rec := httptest.NewRecorder()
		handler.Reconcile(rec, post(dto.ReconcileRequest{
			Invoice:  testInvoice(),
			Contract: testContract(),
		}))

		require.True(t, repo.SaveRunCalled)
		assert.Equal(t, "INV-100", repo.LastSavedRun.InvoiceNumber)
		assert.Equal(t, "SOW-100", repo.LastSavedRun.ContractID)
		assert.True(t, repo.LastSavedRun.Pass)
		assert.NotEmpty(t, repo.LastSavedRun.ID)
	})

	t.Run("currency mismatch fails", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newHandler(repo)

		invoice := testInvoice()
		invoice.Currency = "EUR"

		rec := httptest.NewRecorder()
		handler.Reconcile(rec, post(dto.ReconcileRequest{
			Invoice:  invoice,
			Contract: testContract(),
		}))

		assert.Equal(t, http.StatusOK, rec.Code)

		var result document.ReconcileResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))

		assert.False(t, result.Summary.Pass)
		require.Len(t, result.Findings, 1)
		assert.Equal(t, document.FindingCurrencyMismatch, result.Findings[0].Type)
	})

	t.Run("returns result even when persistence fails", func(t *testing.T) {
		repo := storage.NewMockRepository()
		repo.SaveRunErr = assert.AnError
		handler := newHandler(repo)

		rec := httptest.NewRecorder()
		handler.Reconcile(rec, post(dto.ReconcileRequest{
			Invoice:  testInvoice(),
			Contract: testContract(),
		}))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects missing documents", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newHandler(repo)

		rec := httptest.NewRecorder()
		handler.Reconcile(rec, post(dto.ReconcileRequest{Invoice: testInvoice()}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var apiErr dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
		assert.Equal(t, dto.ErrCodeBadRequest, apiErr.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newHandler(repo)

		req := httptest.NewRequest(http.MethodPost, "/reconcile", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		handler.Reconcile(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
