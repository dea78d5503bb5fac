package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pactproof/backend/internal/api/dto"
)

// Version is the application version reported by the health endpoint.
const Version = "0.1.0"

// HealthHandler handles health check requests.
type HealthHandler struct {
	appMode string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(appMode string) *HealthHandler {
	return &HealthHandler{appMode: appMode}
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := dto.HealthResponse{
		Status:  "ok",
		AppMode: h.appMode,
		Version: Version,
	}
	_ = json.NewEncoder(w).Encode(response)
}
