// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/creel/creel/internal/cache"
	"github.com/creel/creel/internal/feed"
	"github.com/creel/creel/internal/metrics"
	"github.com/creel/creel/internal/model"
	"github.com/creel/creel/internal/repository"
	"github.com/creel/creel/internal/stats"
)

// Service errors.
var (
	ErrCatchNotFound     = errors.New("catch not found")
	ErrOutingNotFound    = errors.New("outing not found")
	ErrInvalidWeight     = errors.New("weight must be positive")
	ErrInvalidWeightUnit = errors.New("invalid weight unit")
	ErrFieldTooLong      = errors.New("field exceeds max length")
	ErrTimestampInFuture = errors.New("caught_at must not be in the future")
)

const (
	maxFieldLength = 200
	// futureSkew tolerates client clock drift when validating timestamps.
	futureSkew = 5 * time.Minute
)

// CatchService handles catch CRUD and feed publication.
type CatchService struct {
	catches   *repository.CatchRepository
	outings   *repository.OutingRepository
	cache     *cache.Cache
	publisher *feed.Publisher
	logger    *slog.Logger
	metrics   metrics.Recorder
}

// NewCatchService creates a new CatchService. The publisher may be nil when
// the feed pipeline is disabled.
func NewCatchService(catches *repository.CatchRepository, outings *repository.OutingRepository, c *cache.Cache, publisher *feed.Publisher, logger *slog.Logger, recorder metrics.Recorder) *CatchService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CatchService{
		catches:   catches,
		outings:   outings,
		cache:     c,
		publisher: publisher,
		logger:    logger.With("component", "service.catch"),
		metrics:   recorder,
	}
}

// CreateCatchInput defines input for logging a catch.
type CreateCatchInput struct {
	AnglerID      string
	OutingID      string
	CaughtAt      *time.Time
	Venue         string
	SpeciesCode   string
	TechniqueCode string
	BaitCode      string
	Weight        *float64
	WeightUnit    string
	TimeOfDayCode string
	Conditions    model.Conditions
	Custom        model.CustomFields
}

// CreateCatch logs a new catch, invalidates cached reports, and publishes a
// feed event.
func (s *CatchService) CreateCatch(ctx context.Context, input CreateCatchInput) (*model.Catch, error) {
	if err := s.validateCatchInput(input); err != nil {
		return nil, err
	}

	// Outing reference must belong to the same angler.
	if input.OutingID != "" {
		if _, err := s.outings.GetByID(ctx, input.AnglerID, input.OutingID); err != nil {
			if errors.Is(err, repository.ErrOutingNotFound) {
				return nil, ErrOutingNotFound
			}
			return nil, err
		}
	}

	now := time.Now().UTC()
	c := &model.Catch{
		ID:            ulid.Make().String(),
		AnglerID:      input.AnglerID,
		OutingID:      input.OutingID,
		CaughtAt:      input.CaughtAt,
		LoggedAt:      &now,
		Venue:         input.Venue,
		SpeciesCode:   input.SpeciesCode,
		TechniqueCode: input.TechniqueCode,
		BaitCode:      input.BaitCode,
		Weight:        input.Weight,
		WeightUnit:    model.WeightUnit(input.WeightUnit),
		TimeOfDayCode: input.TimeOfDayCode,
		Conditions:    input.Conditions,
		Custom:        input.Custom,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.catches.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create catch: %w", err)
	}

	s.metrics.IncCatchCreated()
	s.invalidateReports(ctx, input.AnglerID)
	s.publishCatchLogged(c, now)

	return c, nil
}

// GetCatch retrieves a catch by ID, scoped to the angler.
func (s *CatchService) GetCatch(ctx context.Context, anglerID, id string) (*model.Catch, error) {
	c, err := s.catches.GetByID(ctx, anglerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrCatchNotFound) {
			return nil, ErrCatchNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListCatches returns all catches for an angler in insertion order.
func (s *CatchService) ListCatches(ctx context.Context, anglerID string) ([]*model.Catch, error) {
	return s.catches.ListByAngler(ctx, anglerID)
}

// UpdateCatchInput defines input for updating a catch. Nil pointers leave
// the field unchanged; ClearOuting detaches the catch from its outing.
type UpdateCatchInput struct {
	AnglerID      string
	ID            string
	OutingID      *string
	ClearOuting   bool
	CaughtAt      *time.Time
	ClearCaughtAt bool
	Venue         *string
	SpeciesCode   *string
	TechniqueCode *string
	BaitCode      *string
	Weight        *float64
	ClearWeight   bool
	WeightUnit    *string
	TimeOfDayCode *string
	Conditions    *model.Conditions
	Custom        *model.CustomFields
}

// UpdateCatch updates a catch's mutable fields.
func (s *CatchService) UpdateCatch(ctx context.Context, input UpdateCatchInput) (*model.Catch, error) {
	c, err := s.catches.GetByID(ctx, input.AnglerID, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCatchNotFound) {
			return nil, ErrCatchNotFound
		}
		return nil, err
	}

	if input.ClearOuting {
		c.OutingID = ""
	} else if input.OutingID != nil {
		if _, err := s.outings.GetByID(ctx, input.AnglerID, *input.OutingID); err != nil {
			if errors.Is(err, repository.ErrOutingNotFound) {
				return nil, ErrOutingNotFound
			}
			return nil, err
		}
		c.OutingID = *input.OutingID
	}

	if input.ClearCaughtAt {
		c.CaughtAt = nil
	} else if input.CaughtAt != nil {
		if input.CaughtAt.After(time.Now().Add(futureSkew)) {
			return nil, ErrTimestampInFuture
		}
		c.CaughtAt = input.CaughtAt
	}

	if input.Venue != nil {
		if len(*input.Venue) > maxFieldLength {
			return nil, ErrFieldTooLong
		}
		c.Venue = *input.Venue
	}
	if input.SpeciesCode != nil {
		c.SpeciesCode = *input.SpeciesCode
	}
	if input.TechniqueCode != nil {
		c.TechniqueCode = *input.TechniqueCode
	}
	if input.BaitCode != nil {
		c.BaitCode = *input.BaitCode
	}

	if input.ClearWeight {
		c.Weight = nil
		c.WeightUnit = ""
	} else if input.Weight != nil {
		if *input.Weight <= 0 {
			return nil, ErrInvalidWeight
		}
		c.Weight = input.Weight
	}
	if input.WeightUnit != nil {
		unit := model.WeightUnit(*input.WeightUnit)
		if !validWeightUnit(unit) {
			return nil, ErrInvalidWeightUnit
		}
		c.WeightUnit = unit
	}

	if input.TimeOfDayCode != nil {
		c.TimeOfDayCode = *input.TimeOfDayCode
	}
	if input.Conditions != nil {
		c.Conditions = *input.Conditions
	}
	if input.Custom != nil {
		c.Custom = *input.Custom
	}

	c.UpdatedAt = time.Now().UTC()

	if err := s.catches.Update(ctx, c); err != nil {
		return nil, err
	}

	s.metrics.IncCatchUpdated()
	s.invalidateReports(ctx, input.AnglerID)

	return c, nil
}

// DeleteCatch removes a catch.
func (s *CatchService) DeleteCatch(ctx context.Context, anglerID, id string) error {
	if err := s.catches.Delete(ctx, anglerID, id); err != nil {
		if errors.Is(err, repository.ErrCatchNotFound) {
			return ErrCatchNotFound
		}
		return err
	}

	s.metrics.IncCatchDeleted()
	s.invalidateReports(ctx, anglerID)

	return nil
}

// invalidateReports bumps the angler's records version so memoized reports
// built against the old collection stop matching.
func (s *CatchService) invalidateReports(ctx context.Context, anglerID string) {
	if err := s.cache.BumpRecordsVersion(ctx, anglerID); err != nil {
		// Stale reports expire via TTL; eventual consistency is acceptable.
		s.logger.Warn("failed to bump records version", "angler_id", anglerID, "error", err)
	}
}

// publishCatchLogged emits a feed event for a freshly logged catch.
func (s *CatchService) publishCatchLogged(c *model.Catch, loggedAt time.Time) {
	if s.publisher == nil {
		return
	}

	var weightKg *float64
	if kg, ok := stats.WeightKg(c); ok {
		weightKg = &kg
	}

	s.publisher.PublishAsync(feed.NewCatchLoggedPayload(c, stats.SpeciesLabel(c), weightKg, loggedAt))
}

// validateCatchInput validates input for a new catch.
func (s *CatchService) validateCatchInput(input CreateCatchInput) error {
	if input.Weight != nil && *input.Weight <= 0 {
		return ErrInvalidWeight
	}
	unit := model.WeightUnit(input.WeightUnit)
	if !validWeightUnit(unit) {
		return ErrInvalidWeightUnit
	}
	if input.CaughtAt != nil && input.CaughtAt.After(time.Now().Add(futureSkew)) {
		return ErrTimestampInFuture
	}
	for _, field := range []string{
		input.Venue, input.SpeciesCode, input.TechniqueCode, input.BaitCode,
		input.Custom.Species, input.Custom.Technique, input.Custom.Bait, input.Custom.WaterType,
	} {
		if len(field) > maxFieldLength {
			return ErrFieldTooLong
		}
	}
	return nil
}

// validWeightUnit accepts the known unit tags plus empty (unit unknown, the
// value passes through aggregation as-is).
func validWeightUnit(unit model.WeightUnit) bool {
	switch unit {
	case "", model.UnitKilograms, model.UnitPounds, model.UnitPoundsOunces:
		return true
	}
	return false
}
