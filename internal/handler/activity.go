package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/creel/creel/internal/handler/dto"
	"github.com/creel/creel/internal/service"
)

// ActivityHandler serves the social activity feed.
type ActivityHandler struct {
	svc    *service.ActivityService
	logger *slog.Logger
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(svc *service.ActivityService, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/v1/feed.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAngler(w, r); !ok {
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	events, err := h.svc.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("feed_list_failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.ToActivityListResponse(events))
}
