package httpadapter

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"city-ads/internal/core/port"
)

// handleImpression serves POST /api/v1/ads/{id}/impression. A missing
// ad is a 404; a store failure degrades to success=false so the client
// side never blocks on tracking.
func (h *Handler) handleImpression(w http.ResponseWriter, r *http.Request) {
	adID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid ad id"})
		return
	}

	if err := h.svc.RecordImpression(r.Context(), adID); err != nil {
		if errors.Is(err, port.ErrAdNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]any{"success": false})
			return
		}
		h.logger.Error("record impression error", slog.Any("error", err), slog.Int64("ad_id", adID))
		h.writeJSON(w, http.StatusOK, map[string]any{"success": false})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleClick serves POST /api/v1/ads/{id}/click. The client address
// and user agent come from the request headers; the usecase hashes the
// address before anything is persisted. On success the response carries
// the ad's target URL so the caller can redirect. A failed write still
// answers with structured JSON (success=false) and must not prevent the
// client's navigation.
func (h *Handler) handleClick(w http.ResponseWriter, r *http.Request) {
	adID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid ad id"})
		return
	}

	targetURL, err := h.svc.RecordClick(r.Context(), adID, clientAddr(r), r.UserAgent())
	if err != nil {
		if errors.Is(err, port.ErrAdNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]any{"success": false})
			return
		}
		h.logger.Error("record click error", slog.Any("error", err), slog.Int64("ad_id", adID))
		h.writeJSON(w, http.StatusOK, map[string]any{"success": false})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true, "targetUrl": targetURL})
}

// clientAddr extracts the originating client address: the first hop of
// X-Forwarded-For when present, otherwise the connection's remote host.
func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
