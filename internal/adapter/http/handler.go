package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"city-ads/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter
// for HTTP. It holds an AdUseCase to execute business logic and a
// logger for structured logging. Routes are registered on a chi.Router
// for convenient method handling.
type Handler struct {
	svc        port.AdUseCase
	logger     *slog.Logger
	adminToken string
	cacheTTL   time.Duration
	router     chi.Router
}

// NewHandler creates a handler with all routes configured. adminToken
// guards the admin boundary when non-empty; cacheTTL drives the
// Cache-Control max-age on the public selection endpoint.
func NewHandler(svc port.AdUseCase, logger *slog.Logger, adminToken string, cacheTTL time.Duration) *Handler {
	h := &Handler{svc: svc, logger: logger, adminToken: adminToken, cacheTTL: cacheTTL}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ads", h.handleSelectAds)
		r.Post("/ads/{id}/impression", h.handleImpression)
		r.Post("/ads/{id}/click", h.handleClick)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAdminToken)
			r.Post("/admin/reorder", h.handleReorder)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// requireAdminToken protects admin endpoints using a static bearer
// token. An empty configured token leaves the route open (dev mode).
func (h *Handler) requireAdminToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.adminToken == "" {
			next.ServeHTTP(w, r)
			return
		}
		auth := r.Header.Get("Authorization")
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			h.writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "missing bearer token"})
			return
		}
		if parts[1] != h.adminToken {
			h.writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "error": "invalid token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON body with the given status. Encoding should
// rarely fail; failures are logged and the response left as-is.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}
