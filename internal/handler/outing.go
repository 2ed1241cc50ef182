package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/creel/creel/internal/handler/dto"
	"github.com/creel/creel/internal/service"
)

// OutingHandler handles HTTP requests for outing operations.
type OutingHandler struct {
	svc    *service.OutingService
	logger *slog.Logger
}

// NewOutingHandler creates a new OutingHandler.
func NewOutingHandler(svc *service.OutingService, logger *slog.Logger) *OutingHandler {
	return &OutingHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/outings.
func (h *OutingHandler) Create(w http.ResponseWriter, r *http.Request) {
	anglerID, ok := requireAngler(w, r)
	if !ok {
		return
	}

	var req dto.CreateOutingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	o, err := h.svc.CreateOuting(r.Context(), service.CreateOutingInput{
		AnglerID: anglerID,
		Title:    req.Title,
		Venue:    req.Venue,
		Date:     req.Date,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("outing_created", "outing_id", o.ID, "angler_id", o.AnglerID)

	writeJSON(w, http.StatusCreated, dto.ToOutingResponse(o))
}

// Get handles GET /api/v1/outings/{id}.
func (h *OutingHandler) Get(w http.ResponseWriter, r *http.Request) {
	anglerID, ok := requireAngler(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Outing ID is required")
		return
	}

	o, err := h.svc.GetOuting(r.Context(), anglerID, id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToOutingResponse(o))
}

// List handles GET /api/v1/outings.
func (h *OutingHandler) List(w http.ResponseWriter, r *http.Request) {
	anglerID, ok := requireAngler(w, r)
	if !ok {
		return
	}

	outings, err := h.svc.ListOutings(r.Context(), anglerID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToOutingListResponse(outings))
}

// Update handles PATCH /api/v1/outings/{id}.
func (h *OutingHandler) Update(w http.ResponseWriter, r *http.Request) {
	anglerID, ok := requireAngler(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Outing ID is required")
		return
	}

	var req dto.UpdateOutingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	o, err := h.svc.UpdateOuting(r.Context(), service.UpdateOutingInput{
		AnglerID:  anglerID,
		ID:        id,
		Title:     req.Title,
		Venue:     req.Venue,
		Date:      req.Date,
		ClearDate: req.ClearDate,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("outing_updated", "outing_id", o.ID, "angler_id", o.AnglerID)

	writeJSON(w, http.StatusOK, dto.ToOutingResponse(o))
}

// Delete handles DELETE /api/v1/outings/{id}.
func (h *OutingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	anglerID, ok := requireAngler(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Outing ID is required")
		return
	}

	if err := h.svc.DeleteOuting(r.Context(), anglerID, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("outing_deleted", "outing_id", id, "angler_id", anglerID)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses.
func (h *OutingHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrOutingNotFound):
		h.writeError(w, http.StatusNotFound, "OUTING_NOT_FOUND", "Outing not found")
	case errors.Is(err, service.ErrFieldTooLong):
		h.writeError(w, http.StatusBadRequest, "FIELD_TOO_LONG", "Field exceeds maximum length")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *OutingHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
