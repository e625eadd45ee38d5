// Package httpadapter is the inbound HTTP adapter: it exposes the
// console's view-model API, consumed by the admin UI.
package httpadapter

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ad-console/internal/core/domain"
	"ad-console/internal/core/port"
	"ad-console/internal/poller"
)

// Handler contains dependencies and routes. It holds the console and
// settings services for business operations, plus the background pollers
// whose snapshots feed the status endpoint.
type Handler struct {
	console  port.Console
	settings port.Settings
	sessions *poller.Poller[*domain.SessionPage]
	upstream *poller.Poller[bool]
	logger   *slog.Logger
	router   chi.Router
}

// NewHandler creates a handler with all routes configured. The generate
// routes are rate limited per IP since every call creates upstream
// state; everything else is cheap reads or single deletes.
func NewHandler(
	console port.Console,
	settings port.Settings,
	sessions *poller.Poller[*domain.SessionPage],
	upstream *poller.Poller[bool],
	logger *slog.Logger,
) *Handler {
	h := &Handler{
		console:  console,
		settings: settings,
		sessions: sessions,
		upstream: upstream,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
	}))

	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/sessions", h.handleListSessions)
		r.Get("/sessions/{sessionID}", h.handleSessionDetail)
		r.Delete("/sessions/{sessionID}", h.handleDeleteSession)
		r.Get("/sessions/{sessionID}/events", h.handleSessionEvents)
		r.Post("/sessions/{sessionID}/tracking", h.handleTracking)

		r.Route("/generate", func(r chi.Router) {
			r.Use(httprate.LimitByIP(30, time.Minute))
			r.Get("/vast", h.handleGenerate(port.GenerateVAST))
			r.Get("/vmap", h.handleGenerate(port.GenerateVMAP))
			r.Get("/ad", h.handleGenerate(port.GenerateFlex))
		})

		r.Get("/analytics/overview", h.handleOverview)
		r.Get("/status", h.handleStatus)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.handleGetSettings)
			r.Put("/", h.handlePutSettings)
			r.Post("/test", h.handleTestSettings)
			r.Post("/reset", h.handleResetSettings)
		})
	})

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// handleHealth reports the console's own liveness, not the ad server's;
// the status endpoint covers upstream reachability.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// requestID tags every request and response with a correlation id,
// honouring one supplied by the caller.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}
