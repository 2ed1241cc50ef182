package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/creel/creel/internal/handler/dto"
	"github.com/creel/creel/internal/service"
	"github.com/creel/creel/internal/stats"
)

// StatsHandler serves the aggregated personal stats report.
type StatsHandler struct {
	svc    *service.StatsService
	logger *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(svc *service.StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		svc:    svc,
		logger: logger,
	}
}

// Get handles GET /api/v1/stats.
//
// Query parameters:
//
//	scope     all | last30 | season | last_outing | custom (default all)
//	from, to  bounds for scope=custom, RFC 3339 or YYYY-MM-DD
//	outing_id restrict to one outing
//	venue     restrict to an exact venue string
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	anglerID, ok := requireAngler(w, r)
	if !ok {
		return
	}

	f, err := parseStatsFilter(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_FILTER", err.Error())
		return
	}

	result, err := h.svc.BuildReport(r.Context(), anglerID, f)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimeScope) {
			h.writeError(w, http.StatusBadRequest, "INVALID_SCOPE", "Unrecognized scope")
			return
		}
		h.logger.Error("report_build_failed", "angler_id", anglerID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// parseStatsFilter builds the stats filter from query parameters.
func parseStatsFilter(r *http.Request) (stats.Filter, error) {
	query := r.URL.Query()

	f := stats.Filter{
		Scope:    stats.TimeScope{Kind: stats.ScopeAll},
		OutingID: query.Get("outing_id"),
		Venue:    query.Get("venue"),
	}

	if scope := query.Get("scope"); scope != "" {
		f.Scope.Kind = stats.ScopeKind(scope)
		if !stats.ValidScopeKind(f.Scope.Kind) {
			return stats.Filter{}, errors.New("unrecognized scope")
		}
	}

	if from := query.Get("from"); from != "" {
		t, err := parseDateParam(from)
		if err != nil {
			return stats.Filter{}, errors.New("invalid from date")
		}
		f.Scope.Start = &t
	}
	if to := query.Get("to"); to != "" {
		t, err := parseDateParam(to)
		if err != nil {
			return stats.Filter{}, errors.New("invalid to date")
		}
		f.Scope.End = &t
	}

	if f.Scope.Kind == stats.ScopeCustom && f.Scope.Start == nil && f.Scope.End == nil {
		return stats.Filter{}, errors.New("custom scope requires from or to")
	}
	if f.Scope.Start != nil && f.Scope.End != nil && f.Scope.End.Before(*f.Scope.Start) {
		return stats.Filter{}, errors.New("to must not precede from")
	}

	return f, nil
}

// parseDateParam accepts RFC 3339 timestamps and bare dates.
func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// writeError writes an error response.
func (h *StatsHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
