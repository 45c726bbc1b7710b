package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"city-ads/internal/core/domain"
	"city-ads/internal/core/port"
)

// reorderRequest is the body for POST /api/v1/admin/reorder. Entity is
// optional and defaults to "ad".
type reorderRequest struct {
	Entity string `json:"entity"`
	Order  []struct {
		ID           int64 `json:"id"`
		DisplayOrder int   `json:"display_order"`
	} `json:"order"`
}

// handleReorder applies an admin reordering request. Malformed payloads
// (bad JSON, empty list, unknown entity) are rejected with 400 before
// any processing; a missing record is a 404; a store failure answers
// 500 with a structured body. Re-submitting the same order converges to
// the same final state.
func (h *Handler) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid JSON"})
		return
	}
	if req.Entity == "" {
		req.Entity = string(domain.KindAd)
	}
	kind, ok := domain.ParseEntityKind(req.Entity)
	if !ok {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "unknown entity"})
		return
	}
	if len(req.Order) == 0 {
		h.writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "empty order list"})
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Order))
	for _, o := range req.Order {
		items = append(items, domain.OrderItem{ID: o.ID, Position: o.DisplayOrder})
	}

	if err := h.svc.ApplyOrder(r.Context(), kind, items); err != nil {
		if errors.Is(err, port.ErrEntityNotFound) {
			h.writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "entity not found"})
			return
		}
		h.logger.Error("apply order error", slog.Any("error", err), slog.String("entity", string(kind)))
		h.writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
