package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pactproof/backend/internal/api"
	"github.com/pactproof/backend/internal/api/dto"
	"github.com/pactproof/backend/internal/domain/document"
	"github.com/pactproof/backend/internal/domain/reconciler"
	"github.com/pactproof/backend/internal/extraction"
	"github.com/pactproof/backend/internal/infrastructure/storage"
)

func newTestServer(t *testing.T) (*api.Server, *storage.MockRepository) {
	t.Helper()
	repo := storage.NewMockRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := api.DefaultConfig()
	cfg.UploadDir = t.TempDir()

	extractor := extraction.NewStubExtractor(logger)
	engine := reconciler.NewEngine(reconciler.DefaultConfig())

	server := api.NewServer(cfg, repo, extractor, engine, nil, logger)
	return server, repo
}

func TestServer_HealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.HealthResponse
	err := json.NewDecoder(rec.Body).Decode(&response)
	require.NoError(t, err)
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "STUB", response.AppMode)
}

func TestServer_ReconcileEndpoint(t *testing.T) {
	server, repo := newTestServer(t)

	body, err := json.Marshal(dto.ReconcileRequest{
		Invoice: &document.Invoice{
			InvoiceNumber: "INV-100",
			Currency:      "USD",
			NetTerms:      "Net 30",
			Items: []document.InvoiceLine{
				{Description: "Consulting services", Quantity: 10, UnitPrice: 100.0, TotalPrice: 1000.0},
			},
		},
		Contract: &document.Contract{
			ContractID: "SOW-100",
			Currency:   "USD",
			NetTerms:   "Net 30",
			LineItems: []document.ContractLine{
				{Description: "Consulting services", UnitPrice: 100.0, MaxQuantity: 20},
			},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/reconcile", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result document.ReconcileResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.True(t, result.Summary.Pass)

	// The run is persisted and visible through the history API.
	require.True(t, repo.SaveRunCalled)

	req = httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rec = httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var runs dto.RunListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&runs))
	require.Equal(t, 1, runs.Count)
	assert.Equal(t, "INV-100", runs.Runs[0].InvoiceNumber)
}

func TestServer_RunsEndpoints(t *testing.T) {
	t.Run("GET /api/runs/:id returns single run", func(t *testing.T) {
		server, repo := newTestServer(t)
		require.NoError(t, repo.SaveRun(&storage.RunRecord{
			ID:            "run-1",
			InvoiceNumber: "INV-100",
			ContractID:    "SOW-100",
			Pass:          true,
			CreatedAt:     time.Now(),
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/runs/run-1", nil)
		rec := httptest.NewRecorder()

		server.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var run storage.RunRecord
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&run))
		assert.Equal(t, "run-1", run.ID)
	})

	t.Run("GET /api/runs/:id returns 404 for missing run", func(t *testing.T) {
		server, _ := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/runs/missing", nil)
		rec := httptest.NewRecorder()

		server.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("GET /api/stats returns aggregates", func(t *testing.T) {
		server, repo := newTestServer(t)
		require.NoError(t, repo.SaveRun(&storage.RunRecord{
			ID:        "run-1",
			Pass:      true,
			CreatedAt: time.Now(),
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
		rec := httptest.NewRecorder()

		server.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var stats storage.Stats
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
		assert.Equal(t, 1, stats.TotalRuns)
		assert.Equal(t, 1, stats.PassedRuns)
	})
}

func TestServer_CORS(t *testing.T) {
	server, _ := newTestServer(t)

	t.Run("sets CORS headers for allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		server.Router().ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("handles OPTIONS preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/reconcile", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		server.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
