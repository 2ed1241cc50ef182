package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/creel/creel/internal/model"
)

// AdminKeyLister defines the interface for listing API keys.
type AdminKeyLister interface {
	ListAPIKeysByAnglerID(ctx context.Context, anglerID string) ([]*model.APIKey, error)
}

// AdminHandler provides admin-only endpoints for debugging and operations.
type AdminHandler struct {
	keyRepo AdminKeyLister
	logger  *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(keyRepo AdminKeyLister, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		keyRepo: keyRepo,
		logger:  logger,
	}
}

// AdminAPIKeyListResponse represents the response for API key listing.
type AdminAPIKeyListResponse struct {
	Keys  []model.APIKeyResponse `json:"keys"`
	Total int                    `json:"total"`
}

// ListAPIKeysByAngler handles GET /api/v1/admin/api-keys?angler_id={id}
// Lists all API keys for a specific angler (admin only).
func (h *AdminHandler) ListAPIKeysByAngler(w http.ResponseWriter, r *http.Request) {
	anglerID := r.URL.Query().Get("angler_id")
	if anglerID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "MISSING_ANGLER_ID", "query parameter 'angler_id' is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	keys, err := h.keyRepo.ListAPIKeysByAnglerID(ctx, anglerID)
	if err != nil {
		h.logger.Error("failed to list API keys",
			"error", err,
			"angler_id", anglerID,
		)
		writeErrorJSON(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list API keys")
		return
	}

	response := AdminAPIKeyListResponse{
		Keys:  make([]model.APIKeyResponse, 0, len(keys)),
		Total: len(keys),
	}

	for _, key := range keys {
		response.Keys = append(response.Keys, key.ToResponse())
	}

	writeJSON(w, http.StatusOK, response)
}

// ServiceInfoResponse represents operational service info.
type ServiceInfoResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

// ServiceInfo handles GET /api/v1/admin/info
// Returns basic operational information.
func (h *AdminHandler) ServiceInfo(w http.ResponseWriter, r *http.Request) {
	response := ServiceInfoResponse{
		Timestamp: time.Now().UTC(),
		Service:   "creel",
		Version:   "1.0.0", // TODO: inject at build time
	}
	writeJSON(w, http.StatusOK, response)
}

// writeErrorJSON writes a JSON error response.
func writeErrorJSON(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"code":  code,
	})
}
