package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pactproof/backend/internal/api/handlers"
	"github.com/pactproof/backend/internal/api/middleware"
	"github.com/pactproof/backend/internal/domain/reconciler"
	"github.com/pactproof/backend/internal/extraction"
	"github.com/pactproof/backend/internal/infrastructure/metrics"
	"github.com/pactproof/backend/internal/infrastructure/storage"
	"github.com/pactproof/backend/internal/note"
)

// Config holds API server configuration.
type Config struct {
	Port            int
	AllowedOrigins  []string
	APIOrigin       string
	AppMode         string
	UploadDir       string
	MaxUploadSizeMB int
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:            8000,
		AllowedOrigins:  []string{"http://localhost:3000", "http://localhost:5173"},
		APIOrigin:       "http://localhost:8000",
		AppMode:         "STUB",
		UploadDir:       "uploads",
		MaxUploadSizeMB: 25,
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	repo       storage.Repository
	extractor  extraction.Extractor
	engine     *reconciler.Engine
	drafter    *note.Drafter
	metrics    *metrics.Metrics
}

// NewServer creates a new API server.
// If m is nil, no metrics are recorded and /metrics is not registered.
func NewServer(cfg Config, repo storage.Repository, extractor extraction.Extractor, engine *reconciler.Engine, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:    cfg,
		router:    chi.NewRouter(),
		logger:    logger,
		repo:      repo,
		extractor: extractor,
		engine:    engine,
		drafter:   note.NewDrafter(),
		metrics:   m,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	corsConfig := middleware.CORSConfig{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}
	s.router.Use(middleware.CORS(corsConfig))

	s.router.Use(middleware.Logging(s.logger))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler(s.config.AppMode)
	s.router.Get("/health", healthHandler.ServeHTTP)

	if s.metrics != nil {
		s.router.Handle("/metrics", promhttp.Handler())
	}

	// Document upload and serving
	uploadHandler := handlers.NewUploadHandler(s.repo, s.config.UploadDir, s.config.MaxUploadSizeMB, s.config.APIOrigin, s.metrics, s.logger)
	s.router.Post("/upload", uploadHandler.Upload)
	s.router.Get("/uploads/{filename}", uploadHandler.Serve)

	// Parse and extract
	extractHandler := handlers.NewExtractHandler(s.repo, s.extractor, s.config.UploadDir, s.config.APIOrigin, s.metrics, s.logger)
	s.router.Post("/parse_extract/invoice", extractHandler.Invoice)
	s.router.Post("/parse_extract/contract", extractHandler.Contract)

	// Reconciliation
	reconcileHandler := handlers.NewReconcileHandler(s.repo, s.engine, s.metrics, s.logger)
	s.router.Post("/reconcile", reconcileHandler.Reconcile)

	// Compliance notes
	noteHandler := handlers.NewNoteHandler(s.drafter, s.logger)
	s.router.Post("/draft_note", noteHandler.Draft)
	s.router.Post("/export_note_pdf", noteHandler.ExportPDF)

	// Run history
	s.router.Route("/api", func(r chi.Router) {
		runsHandler := handlers.NewRunsHandler(s.repo)
		r.Get("/runs", runsHandler.List)
		r.Get("/runs/{id}", runsHandler.Get)
		r.Get("/stats", runsHandler.Stats)
		r.Get("/documents", runsHandler.Documents)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 30 * time.Second,
		// Extraction calls out to a slow document analysis API, so the
		// write timeout has to cover the upstream call.
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr, "app_mode", s.config.AppMode)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
