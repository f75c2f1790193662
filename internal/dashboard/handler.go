package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/vilaca/brand-dashboard/internal/domain"
	"github.com/vilaca/brand-dashboard/internal/logger"
	"github.com/vilaca/brand-dashboard/internal/service"
	"github.com/vilaca/brand-dashboard/internal/store"
)

// StatsService interface for stats lookups (Dependency Inversion Principle).
type StatsService interface {
	GetByUsername(ctx context.Context, platform domain.Platform, username string) (domain.Envelope, error)
	GetByProfile(ctx context.Context, platform domain.Platform, userID string) (domain.Envelope, error)
}

// Handler handles HTTP requests for the stats API.
type Handler struct {
	stats   StatsService
	auth    *Authenticator
	metrics http.Handler
}

// HandlerConfig holds configuration for creating a new Handler
type HandlerConfig struct {
	StatsService   StatsService
	Authenticator  *Authenticator // nil disables token verification; the route answers 500
	MetricsHandler http.Handler   // optional
}

// NewHandler creates a new Handler with injected dependencies.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		stats:   cfg.StatsService,
		auth:    cfg.Authenticator,
		metrics: cfg.MetricsHandler,
	}
}

// Routes builds the router with all middleware installed.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger, instrument)
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/health", h.handleHealth)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics)
	}

	r.Route("/platform/{name}/stats", func(r chi.Router) {
		r.Get("/{username}", h.handleStatsByUsername)
		r.With(h.requireUser).Get("/", h.handleStatsByProfile)
	})
}

// handleHealth serves the health check endpoint.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStatsByUsername serves anonymous lookups. Upstream failures are absorbed
// by the service, so a supported platform always answers 200.
func (h *Handler) handleStatsByUsername(w http.ResponseWriter, r *http.Request) {
	platform, ok := domain.ParsePlatform(chi.URLParam(r, "name"))
	if !ok {
		writeEnvelope(w, r, http.StatusNotFound, domain.Fail(service.ErrUnsupportedPlatform.Error()))
		return
	}

	env, err := h.stats.GetByUsername(r.Context(), platform, chi.URLParam(r, "username"))
	writeEnvelope(w, r, statusFor(err), env)
}

// handleStatsByProfile serves lookups bound to the authenticated user's profile.
func (h *Handler) handleStatsByProfile(w http.ResponseWriter, r *http.Request) {
	platform, ok := domain.ParsePlatform(chi.URLParam(r, "name"))
	if !ok {
		writeEnvelope(w, r, http.StatusNotFound, domain.Fail(service.ErrUnsupportedPlatform.Error()))
		return
	}

	env, err := h.stats.GetByProfile(r.Context(), platform, userIDFrom(r.Context()))
	writeEnvelope(w, r, statusFor(err), env)
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, store.ErrProfileNotFound),
		errors.Is(err, store.ErrBindingNotFound),
		errors.Is(err, service.ErrUnsupportedPlatform):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidUsername):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeEnvelope(w http.ResponseWriter, r *http.Request, status int, env domain.Envelope) {
	if status != http.StatusOK && env.Success {
		env = domain.Fail(http.StatusText(status))
	}
	writeJSON(w, r, status, env)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.From(r.Context()).Warn("failed to write response", zap.Error(err))
	}
}
