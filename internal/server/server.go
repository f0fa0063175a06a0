// Package server is the local HTTP façade over the Chronos engines.
package server

import (
	"encoding/json"
	"net/http"
	goruntime "runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/manav03panchal/chronos/internal/logging"
	"github.com/manav03panchal/chronos/internal/output"
	"github.com/manav03panchal/chronos/internal/runtime"
)

// Server is the Chronos HTTP API server.
type Server struct {
	rt      *runtime.Context
	router  chi.Router
	version string
	started time.Time
	now     func() time.Time
	metrics *Metrics
}

// New creates a new Server over the runtime context.
func New(rt *runtime.Context, version string) *Server {
	s := &Server{
		rt:      rt,
		version: version,
		started: time.Now(),
		now:     rt.Formatter.Now,
		metrics: NewMetrics(),
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/metrics", s.handleMetrics)

		r.Get("/records/{namespace}", s.handleGetRecord)
		r.Put("/records/{namespace}", s.handlePutRecord)

		r.Get("/logs/page", s.handleLogPage)
		r.Post("/logs", s.handleSaveLog)
		r.Delete("/logs/{id}", s.handleDeleteLog)

		r.Get("/daily", s.handleListDaily)
		r.Post("/daily", s.handleAddDaily)
		r.Post("/daily/{id}/toggle", s.handleToggleDaily)
		r.Post("/daily/{id}/archive", s.handleArchiveDaily)
		r.Get("/daily/history", s.handleDailyHistory)
		r.Delete("/daily/history/{id}", s.handleDeleteHistory)

		r.Get("/letter", s.handleGetLetter)
		r.Put("/letter", s.handleSealLetter)

		r.Get("/attributes", s.handleAttributes)
		r.Get("/analytics", s.handleAnalytics)
		r.Get("/progress", s.handleProgress)

		r.Get("/notifications", s.handleNotifications)
		r.Delete("/notifications", s.handleClearNotifications)

		r.Post("/blobs", s.handlePutBlob)
		r.Get("/blobs/{id}", s.handleGetBlob)

		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
	})

	s.router = r
}

// Health is the body of GET /api/health.
type Health struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	DB            bool    `json:"db"`
	DBPath        string  `json:"db_path"`
	DBBytes       string  `json:"db_bytes"`
	Records       int     `json:"records"`
	Blobs         string  `json:"blobs"`
	Subscribers   int     `json:"subscribers"`
	MemoryMB      float64 `json:"memory_mb"`
	Goroutines    int     `json:"goroutines"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := Health{
		Status:        "ok",
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		DB:            true,
		DBPath:        s.rt.DB.Path(),
		DBBytes:       humanize.Bytes(uint64(s.rt.DB.Size())),
		Subscribers:   s.rt.Ledger.Subscribers(),
		Goroutines:    goruntime.NumGoroutine(),
	}
	if stored, err := s.rt.Store.Stored(r.Context()); err == nil {
		h.Records = len(stored)
	} else {
		h.DB = false
		h.Status = "degraded"
	}
	if usage, err := s.rt.Blobs.Usage(r.Context()); err == nil {
		h.Blobs = usage.String()
	} else {
		h.Status = "degraded"
	}

	var mem goruntime.MemStats
	goruntime.ReadMemStats(&mem)
	h.MemoryMB = float64(mem.Alloc) / 1024 / 1024

	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

// Metrics returns the server's request counters.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ok writes v in the success envelope.
func ok(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, output.Response{Status: "ok", Data: v})
}

// fail writes err in the error envelope. Denials are also routed through
// the notification ledger.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	s.rt.Ledger.Report(ctx, err)
	s.metrics.RecordError(err)

	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		attrs := []any{logging.KeyError, err, logging.KeyStatus, status}
		if se, ok := errors.AsSystemError(err); ok && se.Op != "" {
			attrs = append(attrs, logging.KeyOperation, se.Op)
		}
		logging.LoggerFromContext(ctx).Error("request failed", attrs...)
	}
	writeJSON(w, status, output.NewErrorResponse(err))
}

// decode reads a JSON request body into v.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.bodyLimit())
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return errors.NewUserError("Request body is not valid JSON", "Send a JSON object matching the endpoint")
	}
	return nil
}

func (s *Server) bodyLimit() int64 {
	if n := s.rt.Config.Store.MaxRecordBytes; n > 0 {
		return int64(n)
	}
	return 5 << 20
}
