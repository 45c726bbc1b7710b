package httpadapter

import (
	"fmt"
	"net/http"
	"strconv"

	"city-ads/internal/core/domain"
	"city-ads/internal/core/port"
)

// handleSelectAds serves GET /api/v1/ads. Query parameters: targetPage
// (unknown or missing values fall back to the homepage), placement
// (optional), limit (optional positive integer). The response carries a
// shared Cache-Control directive matching the selection cache TTL. The
// usecase never fails here; at worst the ads array is empty.
func (h *Handler) handleSelectAds(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := port.SelectRequest{
		Page:      domain.ParsePage(q.Get("targetPage")),
		Placement: domain.ParsePlacement(q.Get("placement")),
	}
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			req.Limit = n
		}
	}

	views := h.svc.SelectAds(r.Context(), req)

	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.cacheTTL.Seconds())))
	h.writeJSON(w, http.StatusOK, map[string]any{"ads": views})
}
