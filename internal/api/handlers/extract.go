package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pactproof/backend/internal/api/dto"
	"github.com/pactproof/backend/internal/domain/document"
	"github.com/pactproof/backend/internal/domain/validator"
	"github.com/pactproof/backend/internal/extraction"
	"github.com/pactproof/backend/internal/infrastructure/metrics"
	"github.com/pactproof/backend/internal/infrastructure/storage"
)

// ExtractHandler handles document parse and extract requests.
type ExtractHandler struct {
	*Base
	extractor extraction.Extractor
	uploadDir string
	apiOrigin string
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewExtractHandler creates a new extract handler.
func NewExtractHandler(repo storage.Repository, extractor extraction.Extractor, uploadDir, apiOrigin string, m *metrics.Metrics, logger *slog.Logger) *ExtractHandler {
	return &ExtractHandler{
		Base:      NewBase(repo),
		extractor: extractor,
		uploadDir: uploadDir,
		apiOrigin: apiOrigin,
		metrics:   m,
		logger:    logger,
	}
}

// Invoice handles POST /parse_extract/invoice - stores the uploaded file
// and runs invoice extraction on it.
func (h *ExtractHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	filePath, filename, ok := h.saveUpload(w, r)
	if !ok {
		return
	}

	h.logger.Info("Parsing invoice", "filename", filename)

	result, err := h.extractor.ExtractInvoice(r.Context(), filePath)
	if err != nil {
		h.logger.Error("Invoice extraction failed", "filename", filename, "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	if h.metrics != nil {
		h.metrics.Extractions.WithLabelValues("invoice").Inc()
	}
	h.markDocType(filename, "invoice")

	if check := validator.ValidateTotals(result.Invoice); !check.Valid {
		h.logger.Warn("Invoice totals do not reconcile", "filename", filename, "reason", check.Reason)
	}

	h.WriteJSON(w, http.StatusOK, dto.ExtractionResponse{
		Invoice:  result.Invoice,
		Meta:     result.Meta,
		Parse:    result.Parse,
		FileURL:  h.apiOrigin + "/uploads/" + filename,
		FilePath: filePath,
	})
}

// Contract handles POST /parse_extract/contract. A .json upload is decoded
// directly as a contract without calling the extraction API; anything else
// goes through the extractor like an invoice does.
func (h *ExtractHandler) Contract(w http.ResponseWriter, r *http.Request) {
	filePath, filename, ok := h.saveUpload(w, r)
	if !ok {
		return
	}

	if strings.HasSuffix(filename, ".json") {
		data, err := os.ReadFile(filePath)
		if err != nil {
			h.logger.Error("Failed to read contract JSON", "filename", filename, "error", err)
			h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
			return
		}

		var contract document.Contract
		if err := json.Unmarshal(data, &contract); err != nil {
			h.WriteError(w, http.StatusBadRequest, dto.BadRequestError(fmt.Sprintf("invalid JSON: %v", err)))
			return
		}
		contract.ApplyDefaults()

		h.logger.Info("Loaded contract from JSON", "filename", filename)
		h.markDocType(filename, "contract")

		h.WriteJSON(w, http.StatusOK, dto.ExtractionResponse{
			Contract: &contract,
			Meta:     []document.ExtractionMeta{},
			Parse:    document.ParseResult{Pages: 1},
			FileURL:  h.apiOrigin + "/uploads/" + filename,
			FilePath: filePath,
		})
		return
	}

	h.logger.Info("Parsing contract", "filename", filename)

	result, err := h.extractor.ExtractContract(r.Context(), filePath)
	if err != nil {
		h.logger.Error("Contract extraction failed", "filename", filename, "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	if h.metrics != nil {
		h.metrics.Extractions.WithLabelValues("contract").Inc()
	}
	h.markDocType(filename, "contract")

	h.WriteJSON(w, http.StatusOK, dto.ExtractionResponse{
		Contract: result.Contract,
		Meta:     result.Meta,
		Parse:    result.Parse,
		FileURL:  h.apiOrigin + "/uploads/" + filename,
		FilePath: filePath,
	})
}

// saveUpload writes the multipart file to the upload directory and returns
// its stored path. On failure it writes the error response itself.
func (h *ExtractHandler) saveUpload(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("missing file field"))
		return "", "", false
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if filename == "" || filename == "." {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid filename"))
		return "", "", false
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.logger.Error("Failed to create upload directory", "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return "", "", false
	}

	filePath := filepath.Join(h.uploadDir, filename)
	dst, err := os.Create(filePath)
	if err != nil {
		h.logger.Error("Failed to create file", "path", filePath, "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return "", "", false
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		h.logger.Error("Failed to write file", "path", filePath, "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return "", "", false
	}

	record := &storage.DocumentRecord{
		Filename:    filename,
		StoredPath:  filePath,
		SizeBytes:   size,
		ContentType: header.Header.Get("Content-Type"),
		UploadedAt:  time.Now().UTC(),
	}
	if err := h.repo.SaveDocument(record); err != nil {
		h.logger.Warn("Failed to record document", "filename", filename, "error", err)
	}

	return filePath, filename, true
}

// markDocType tags the stored document record with the extracted type.
func (h *ExtractHandler) markDocType(filename, docType string) {
	record, err := h.repo.GetDocument(filename)
	if err != nil || record == nil {
		return
	}
	record.DocType = docType
	if err := h.repo.SaveDocument(record); err != nil {
		h.logger.Warn("Failed to update document type", "filename", filename, "error", err)
	}
}
