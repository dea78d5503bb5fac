package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pactproof/backend/internal/api/dto"
	"github.com/pactproof/backend/internal/domain/reconciler"
	"github.com/pactproof/backend/internal/infrastructure/metrics"
	"github.com/pactproof/backend/internal/infrastructure/storage"
)

// ReconcileHandler handles reconciliation requests.
type ReconcileHandler struct {
	*Base
	engine  *reconciler.Engine
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewReconcileHandler creates a new reconcile handler.
func NewReconcileHandler(repo storage.Repository, engine *reconciler.Engine, m *metrics.Metrics, logger *slog.Logger) *ReconcileHandler {
	return &ReconcileHandler{
		Base:    NewBase(repo),
		engine:  engine,
		metrics: m,
		logger:  logger,
	}
}

// Reconcile handles POST /reconcile - checks an invoice against a contract.
func (h *ReconcileHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req dto.ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}
	if req.Invoice == nil || req.Contract == nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invoice and contract are required"))
		return
	}

	h.logger.Info("Reconciling invoice against contract",
		"invoice_number", req.Invoice.InvoiceNumber,
		"contract_id", req.Contract.ContractID,
	)

	result := h.engine.Reconcile(req.Invoice, req.Contract)

	h.logger.Info("Reconciliation complete",
		"total", result.Summary.TotalCount,
		"major", result.Summary.MajorCount,
		"minor", result.Summary.MinorCount,
	)

	record := &storage.RunRecord{
		ID:            uuid.New().String(),
		InvoiceNumber: req.Invoice.InvoiceNumber,
		ContractID:    req.Contract.ContractID,
		Pass:          result.Summary.Pass,
		MajorCount:    result.Summary.MajorCount,
		MinorCount:    result.Summary.MinorCount,
		TotalCount:    result.Summary.TotalCount,
		CreatedAt:     time.Now().UTC(),
		Findings:      result.Findings,
	}
	if err := h.repo.SaveRun(record); err != nil {
		// The result is still valid even when persistence fails.
		h.logger.Warn("Failed to persist reconciliation run", "error", err)
	}

	if h.metrics != nil {
		h.metrics.ObserveReconciliation(result.Summary.MajorCount, result.Summary.MinorCount)
	}

	h.WriteJSON(w, http.StatusOK, result)
}
