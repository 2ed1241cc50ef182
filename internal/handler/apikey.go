package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/creel/creel/internal/handler/dto"
	"github.com/creel/creel/internal/model"
	"github.com/creel/creel/internal/service"
)

// APIKeyHandler exposes key management over HTTP. All business rules live in
// service.APIKeyService; this layer only translates requests and errors.
type APIKeyHandler struct {
	logger *slog.Logger
	keys   *service.APIKeyService
}

// NewAPIKeyHandler creates a new APIKeyHandler.
func NewAPIKeyHandler(logger *slog.Logger, keys *service.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{logger: logger, keys: keys}
}

// CreateAPIKey handles POST /v1/api-keys
func (h *APIKeyHandler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	anglerID, ok := requireAngler(w, r)
	if !ok {
		return
	}

	var req model.APIKeyCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	created, err := h.keys.Create(r.Context(), anglerID, req.Name, req.Scopes)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createResponse(created))
}

// ListAPIKeys handles GET /v1/api-keys
func (h *APIKeyHandler) ListAPIKeys(w http.ResponseWriter, r *http.Request) {
	anglerID, ok := requireAngler(w, r)
	if !ok {
		return
	}

	keys, err := h.keys.List(r.Context(), anglerID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	responses := make([]model.APIKeyResponse, 0, len(keys))
	for _, key := range keys {
		responses = append(responses, key.ToResponse())
	}
	writeJSON(w, http.StatusOK, map[string]any{"keys": responses})
}

// RevokeAPIKey handles DELETE /v1/api-keys/{key_id}
func (h *APIKeyHandler) RevokeAPIKey(w http.ResponseWriter, r *http.Request) {
	anglerID, ok := requireAngler(w, r)
	if !ok {
		return
	}

	keyID := chi.URLParam(r, "key_id")
	if keyID == "" {
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Key ID is required")
		return
	}

	if err := h.keys.Revoke(r.Context(), anglerID, keyID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RotateAPIKey handles POST /v1/api-keys/{key_id}/rotate
func (h *APIKeyHandler) RotateAPIKey(w http.ResponseWriter, r *http.Request) {
	anglerID, ok := requireAngler(w, r)
	if !ok {
		return
	}

	keyID := chi.URLParam(r, "key_id")
	if keyID == "" {
		h.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Key ID is required")
		return
	}

	rotated, err := h.keys.Rotate(r.Context(), anglerID, keyID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.APIKeyRotateResponse{
		OldKeyID:        rotated.OldKeyID,
		OldKeyRevokedAt: rotated.RevokedAt,
		NewKey:          createResponse(rotated.New),
	})
}

func createResponse(created *service.CreatedKey) model.APIKeyCreateResponse {
	return model.APIKeyCreateResponse{
		ID:            created.Key.ID,
		Key:           created.Plaintext,
		Name:          created.Key.Name,
		KeyPrefix:     created.Key.KeyPrefix,
		Scopes:        created.Key.Scopes,
		RateLimitTier: created.Key.RateLimitTier,
		CreatedAt:     created.Key.CreatedAt,
	}
}

// writeServiceError maps service errors onto HTTP responses. ErrKeyNotFound
// deliberately covers foreign and revoked keys too.
func (h *APIKeyHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidScope):
		h.writeError(w, http.StatusBadRequest, "INVALID_SCOPE",
			"Invalid scope. Valid scopes: read, write, admin")
	case errors.Is(err, service.ErrKeyNotFound):
		h.writeError(w, http.StatusNotFound, "KEY_NOT_FOUND", "API key not found or already revoked")
	default:
		h.logger.Error("api key operation failed", slog.String("error", err.Error()))
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

func (h *APIKeyHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
