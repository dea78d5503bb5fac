package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pactproof/backend/internal/api/dto"
	"github.com/pactproof/backend/internal/infrastructure/metrics"
	"github.com/pactproof/backend/internal/infrastructure/storage"
)

// UploadHandler handles document upload and retrieval requests.
type UploadHandler struct {
	*Base
	uploadDir    string
	maxSizeBytes int64
	apiOrigin    string
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(repo storage.Repository, uploadDir string, maxSizeMB int, apiOrigin string, m *metrics.Metrics, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		Base:         NewBase(repo),
		uploadDir:    uploadDir,
		maxSizeBytes: int64(maxSizeMB) * 1024 * 1024,
		apiOrigin:    apiOrigin,
		metrics:      m,
		logger:       logger,
	}
}

// Upload handles POST /upload - stores a multipart file on disk.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSizeBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		if strings.Contains(err.Error(), "http: request body too large") {
			h.WriteError(w, http.StatusRequestEntityTooLarge, dto.TooLargeError(
				fmt.Sprintf("file exceeds %d MB limit", h.maxSizeBytes/(1024*1024))))
			return
		}
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("missing file field"))
		return
	}
	defer file.Close()

	// Strip any path components the client sent along.
	filename := filepath.Base(header.Filename)
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid filename"))
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.logger.Error("Failed to create upload directory", "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	storedPath := filepath.Join(h.uploadDir, filename)
	dst, err := os.Create(storedPath)
	if err != nil {
		h.logger.Error("Failed to create upload file", "path", storedPath, "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		h.logger.Error("Failed to write upload", "path", storedPath, "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	record := &storage.DocumentRecord{
		Filename:    filename,
		StoredPath:  storedPath,
		SizeBytes:   size,
		ContentType: header.Header.Get("Content-Type"),
		UploadedAt:  time.Now().UTC(),
	}
	if err := h.repo.SaveDocument(record); err != nil {
		h.logger.Error("Failed to record upload", "filename", filename, "error", err)
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	if h.metrics != nil {
		h.metrics.Uploads.Inc()
	}
	h.logger.Info("Stored upload", "filename", filename, "size", size)

	h.WriteJSON(w, http.StatusOK, dto.UploadResponse{
		Filename: filename,
		FileURL:  h.apiOrigin + "/uploads/" + filename,
		Size:     size,
	})
}

// Serve handles GET /uploads/{filename} - streams a stored file back.
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	filename := filepath.Base(chi.URLParam(r, "filename"))

	record, err := h.repo.GetDocument(filename)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	if record == nil {
		h.WriteError(w, http.StatusNotFound, dto.NotFoundError("file"))
		return
	}

	http.ServeFile(w, r, record.StoredPath)
}
