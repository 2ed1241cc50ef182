package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/creel/creel/internal/auth"
	"github.com/creel/creel/internal/handler/dto"
	"github.com/creel/creel/internal/service"
)

// CatchHandler handles HTTP requests for catch operations.
type CatchHandler struct {
	svc    *service.CatchService
	logger *slog.Logger
}

// NewCatchHandler creates a new CatchHandler.
func NewCatchHandler(svc *service.CatchService, logger *slog.Logger) *CatchHandler {
	return &CatchHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/catches.
func (h *CatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	anglerID, ok := requireAngler(w, r)
	if !ok {
		return
	}

	var req dto.CreateCatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.CreateCatchInput{
		AnglerID:      anglerID,
		OutingID:      req.OutingID,
		CaughtAt:      req.CaughtAt,
		Venue:         req.Venue,
		SpeciesCode:   req.SpeciesCode,
		TechniqueCode: req.TechniqueCode,
		BaitCode:      req.BaitCode,
		Weight:        req.Weight,
		WeightUnit:    req.WeightUnit,
		TimeOfDayCode: req.TimeOfDayCode,
		Conditions:    req.Conditions,
		Custom:        req.Custom,
	}

	c, err := h.svc.CreateCatch(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("catch_created",
		"catch_id", c.ID,
		"angler_id", c.AnglerID,
		"species_code", c.SpeciesCode,
	)

	writeJSON(w, http.StatusCreated, dto.ToCatchResponse(c))
}

// Get handles GET /api/v1/catches/{id}.
func (h *CatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	anglerID, ok := requireAngler(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Catch ID is required")
		return
	}

	c, err := h.svc.GetCatch(r.Context(), anglerID, id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToCatchResponse(c))
}

// List handles GET /api/v1/catches.
func (h *CatchHandler) List(w http.ResponseWriter, r *http.Request) {
	anglerID, ok := requireAngler(w, r)
	if !ok {
		return
	}

	catches, err := h.svc.ListCatches(r.Context(), anglerID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToCatchListResponse(catches))
}

// Update handles PATCH /api/v1/catches/{id}.
func (h *CatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	anglerID, ok := requireAngler(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Catch ID is required")
		return
	}

	var req dto.UpdateCatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.UpdateCatchInput{
		AnglerID:      anglerID,
		ID:            id,
		OutingID:      req.OutingID,
		ClearOuting:   req.ClearOuting,
		CaughtAt:      req.CaughtAt,
		ClearCaughtAt: req.ClearCaughtAt,
		Venue:         req.Venue,
		SpeciesCode:   req.SpeciesCode,
		TechniqueCode: req.TechniqueCode,
		BaitCode:      req.BaitCode,
		Weight:        req.Weight,
		ClearWeight:   req.ClearWeight,
		WeightUnit:    req.WeightUnit,
		TimeOfDayCode: req.TimeOfDayCode,
		Conditions:    req.Conditions,
		Custom:        req.Custom,
	}

	c, err := h.svc.UpdateCatch(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("catch_updated", "catch_id", c.ID, "angler_id", c.AnglerID)

	writeJSON(w, http.StatusOK, dto.ToCatchResponse(c))
}

// Delete handles DELETE /api/v1/catches/{id}.
func (h *CatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	anglerID, ok := requireAngler(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Catch ID is required")
		return
	}

	if err := h.svc.DeleteCatch(r.Context(), anglerID, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("catch_deleted", "catch_id", id, "angler_id", anglerID)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses.
func (h *CatchHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCatchNotFound):
		h.writeError(w, http.StatusNotFound, "CATCH_NOT_FOUND", "Catch not found")
	case errors.Is(err, service.ErrOutingNotFound):
		h.writeError(w, http.StatusUnprocessableEntity, "OUTING_NOT_FOUND", "Referenced outing not found")
	case errors.Is(err, service.ErrInvalidWeight):
		h.writeError(w, http.StatusBadRequest, "INVALID_WEIGHT", "Weight must be positive")
	case errors.Is(err, service.ErrInvalidWeightUnit):
		h.writeError(w, http.StatusBadRequest, "INVALID_WEIGHT_UNIT", "Weight unit must be kg, lb, or lb_oz")
	case errors.Is(err, service.ErrTimestampInFuture):
		h.writeError(w, http.StatusUnprocessableEntity, "TIMESTAMP_IN_FUTURE", "caught_at must not be in the future")
	case errors.Is(err, service.ErrFieldTooLong):
		h.writeError(w, http.StatusBadRequest, "FIELD_TOO_LONG", "Field exceeds maximum length")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *CatchHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// requireAngler extracts the authenticated angler ID from the request
// context, writing a 401 when the auth middleware did not run.
func requireAngler(w http.ResponseWriter, r *http.Request) (string, bool) {
	anglerID := auth.AnglerIDFromContext(r.Context())
	if anglerID == "" {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Authentication required",
			Code:  "UNAUTHORIZED",
		})
		return "", false
	}
	return anglerID, true
}
