package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/creel/creel/internal/cache"
	"github.com/creel/creel/internal/metrics"
	"github.com/creel/creel/internal/repository"
	"github.com/creel/creel/internal/stats"
)

// ErrInvalidTimeScope is returned for an unrecognized time scope kind.
var ErrInvalidTimeScope = errors.New("invalid time scope")

// StatsService builds per-angler catch reports with Redis memoization.
// Cached reports are keyed by (angler, records version, filter fingerprint)
// so any write to the angler's records invalidates them without explicit
// deletes.
type StatsService struct {
	catches *repository.CatchRepository
	outings *repository.OutingRepository
	cache   *cache.Cache
	loc     *time.Location
	ttl     time.Duration
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewStatsService creates a new StatsService. A nil location defaults to
// UTC and a non-positive TTL falls back to cache.DefaultReportTTL.
func NewStatsService(catches *repository.CatchRepository, outings *repository.OutingRepository, c *cache.Cache, loc *time.Location, ttl time.Duration, logger *slog.Logger, recorder metrics.Recorder) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	if ttl <= 0 {
		ttl = cache.DefaultReportTTL
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &StatsService{
		catches: catches,
		outings: outings,
		cache:   c,
		loc:     loc,
		ttl:     ttl,
		logger:  logger.With("component", "service.stats"),
		metrics: recorder,
	}
}

// BuildReport computes the aggregated report for an angler under the given
// filters, serving from cache when the angler's records have not changed.
func (s *StatsService) BuildReport(ctx context.Context, anglerID string, f stats.Filter) (*stats.Result, error) {
	if !stats.ValidScopeKind(f.Scope.Kind) {
		return nil, ErrInvalidTimeScope
	}

	start := time.Now()
	defer func() {
		s.metrics.ObserveReportDuration(time.Since(start))
	}()

	key, ok := s.reportKey(ctx, anglerID, f)
	if ok {
		if cached, err := s.cache.GetReport(ctx, key); err == nil {
			var result stats.Result
			if err := json.Unmarshal(cached, &result); err == nil {
				s.metrics.IncReportCacheHit()
				return &result, nil
			}
			// Corrupt entry; fall through and rebuild.
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("report cache read failed", "error", err)
		}
	}
	s.metrics.IncReportCacheMiss()

	catches, err := s.catches.ListByAngler(ctx, anglerID)
	if err != nil {
		return nil, err
	}
	outings, err := s.outings.ListByAngler(ctx, anglerID)
	if err != nil {
		return nil, err
	}

	result := stats.BuildReport(catches, outings, f, time.Now(), s.loc)

	if ok {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.cache.SetReport(ctx, key, payload, s.ttl); err != nil {
				s.logger.Warn("report cache write failed", "error", err)
			}
		}
	}

	return result, nil
}

// reportKey derives the memoization key. Returns false when the records
// version cannot be read, in which case caching is skipped for the request.
func (s *StatsService) reportKey(ctx context.Context, anglerID string, f stats.Filter) (string, bool) {
	version, err := s.cache.RecordsVersion(ctx, anglerID)
	if err != nil {
		s.logger.Warn("failed to read records version", "angler_id", anglerID, "error", err)
		return "", false
	}

	fingerprint := cache.FilterFingerprint(
		string(f.Scope.Kind),
		formatBound(f.Scope.Start),
		formatBound(f.Scope.End),
		f.OutingID,
		f.Venue,
	)
	return cache.ReportKey(anglerID, version, fingerprint), true
}

func formatBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
