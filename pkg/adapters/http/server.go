// Package http exposes the IDX agent over a JSON HTTP API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/idx/pkg/domain"
	"github.com/aretw0/idx/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxUploadSize bounds an uploaded EIDO document.
const maxUploadSize = 10 << 20

// Server holds the handlers of the IDX API.
type Server struct {
	Incidents ports.IncidentSource
	Claims    ports.ClaimStore
	Metrics   *Metrics
	Logger    *slog.Logger
}

// Option configures the server.
type Option func(*Server)

// WithMetrics enables request metrics and the /metrics endpoint.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = l
	}
}

// NewHandler creates the HTTP handler for the IDX API.
func NewHandler(incidents ports.IncidentSource, claims ports.ClaimStore, opts ...Option) http.Handler {
	s := &Server{
		Incidents: incidents,
		Claims:    claims,
		Logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	if s.Metrics != nil {
		r.Use(s.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	r.Get("/health", s.GetHealth)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/incidents", s.ListIncidents)
		r.Get("/incidents/claimed", s.ListClaimed)
		r.Post("/incidents/correlate", s.Correlate)
		r.Post("/incidents/{incidentID}/claim", s.ClaimIncident)
		r.Post("/eido/upload", s.UploadEIDO)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>IDX Agent API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListIncidents handles the GET /api/v1/incidents request.
func (s *Server) ListIncidents(w http.ResponseWriter, r *http.Request) {
	incidents, err := s.Incidents.ListIncidents(r.Context())
	if err != nil {
		f := classifyListError(err)
		s.Metrics.upstreamError("list_incidents", f.kind)
		s.Logger.Warn("ListIncidents failed", "error", err, "status", f.status)
		writeError(w, f.status, f.detail)
		return
	}
	writeJSON(w, http.StatusOK, incidents)
}

// ClaimIncident handles the POST /api/v1/incidents/{incidentID}/claim request.
func (s *Server) ClaimIncident(w http.ResponseWriter, r *http.Request) {
	incidentID := chi.URLParam(r, "incidentID")

	if err := s.Claims.Claim(r.Context(), incidentID); err != nil {
		if errors.Is(err, domain.ErrEmptyIncidentID) {
			writeError(w, http.StatusUnprocessableEntity, "incident_id must not be empty")
			return
		}
		s.Logger.Error("Claim failed", "error", err, "incident_id", incidentID)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to claim incident: %v", err))
		return
	}

	s.Metrics.claimed()
	s.Logger.Info("Incident claimed", "incident_id", incidentID)
	writeJSON(w, http.StatusOK, domain.NewClaimReceipt(incidentID))
}

// ListClaimed handles the GET /api/v1/incidents/claimed request.
func (s *Server) ListClaimed(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Claims.List(r.Context())
	if err != nil {
		s.Logger.Error("List claims failed", "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list claimed incidents: %v", err))
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// UploadEIDO handles the POST /api/v1/eido/upload request.
func (s *Server) UploadEIDO(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large.")
			return
		}
		s.Logger.Warn("UploadEIDO: missing file field", "error", err)
		writeError(w, http.StatusUnprocessableEntity, "Field required: file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("An unexpected error occurred: %v", err))
		return
	}

	doc, err := domain.ValidateEIDOUpload(header.Filename, content)
	switch {
	case errors.Is(err, domain.ErrUnsupportedFileType):
		writeError(w, http.StatusBadRequest, "Invalid file type. Only .json files are accepted.")
		return
	case errors.Is(err, domain.ErrInvalidEIDO):
		writeError(w, http.StatusBadRequest, "Invalid JSON format in uploaded file.")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("An unexpected error occurred: %v", err))
		return
	}

	reply, err := s.Incidents.Ingest(r.Context(), doc)
	if err != nil {
		f := classifyIngestError(err)
		s.Metrics.upstreamError("ingest", f.kind)
		s.Logger.Warn("UploadEIDO failed", "error", err, "status", f.status, "filename", header.Filename)
		writeError(w, f.status, f.detail)
		return
	}

	s.Logger.Info("EIDO document forwarded", "filename", header.Filename, "size", len(content))
	writeJSON(w, http.StatusOK, reply)
}

// Correlate handles the POST /api/v1/incidents/correlate request.
func (s *Server) Correlate(w http.ResponseWriter, r *http.Request) {
	var req domain.CorrelationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.Logger.Warn("Correlate: Invalid request body", "error", err)
		writeError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, domain.Correlate(req))
}
