package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/creel/creel/internal/cache"
	"github.com/creel/creel/internal/metrics"
	"github.com/creel/creel/internal/model"
	"github.com/creel/creel/internal/repository"
)

// OutingService handles outing CRUD.
type OutingService struct {
	outings *repository.OutingRepository
	cache   *cache.Cache
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewOutingService creates a new OutingService.
func NewOutingService(outings *repository.OutingRepository, c *cache.Cache, logger *slog.Logger, recorder metrics.Recorder) *OutingService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &OutingService{
		outings: outings,
		cache:   c,
		logger:  logger.With("component", "service.outing"),
		metrics: recorder,
	}
}

// CreateOutingInput defines input for creating an outing.
type CreateOutingInput struct {
	AnglerID string
	Title    string
	Venue    string
	Date     *time.Time
}

// CreateOuting creates a new outing.
func (s *OutingService) CreateOuting(ctx context.Context, input CreateOutingInput) (*model.Outing, error) {
	if len(input.Title) > maxFieldLength || len(input.Venue) > maxFieldLength {
		return nil, ErrFieldTooLong
	}

	now := time.Now().UTC()
	o := &model.Outing{
		ID:        ulid.Make().String(),
		AnglerID:  input.AnglerID,
		Title:     input.Title,
		Venue:     input.Venue,
		Date:      input.Date,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.outings.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create outing: %w", err)
	}

	s.metrics.IncOutingCreated()
	s.invalidateReports(ctx, input.AnglerID)

	return o, nil
}

// GetOuting retrieves an outing by ID, scoped to the angler.
func (s *OutingService) GetOuting(ctx context.Context, anglerID, id string) (*model.Outing, error) {
	o, err := s.outings.GetByID(ctx, anglerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrOutingNotFound) {
			return nil, ErrOutingNotFound
		}
		return nil, err
	}
	return o, nil
}

// ListOutings returns all outings for an angler.
func (s *OutingService) ListOutings(ctx context.Context, anglerID string) ([]*model.Outing, error) {
	return s.outings.ListByAngler(ctx, anglerID)
}

// UpdateOutingInput defines input for updating an outing.
type UpdateOutingInput struct {
	AnglerID  string
	ID        string
	Title     *string
	Venue     *string
	Date      *time.Time
	ClearDate bool
}

// UpdateOuting updates an outing's mutable fields.
func (s *OutingService) UpdateOuting(ctx context.Context, input UpdateOutingInput) (*model.Outing, error) {
	o, err := s.outings.GetByID(ctx, input.AnglerID, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrOutingNotFound) {
			return nil, ErrOutingNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		if len(*input.Title) > maxFieldLength {
			return nil, ErrFieldTooLong
		}
		o.Title = *input.Title
	}
	if input.Venue != nil {
		if len(*input.Venue) > maxFieldLength {
			return nil, ErrFieldTooLong
		}
		o.Venue = *input.Venue
	}
	if input.ClearDate {
		o.Date = nil
	} else if input.Date != nil {
		o.Date = input.Date
	}

	o.UpdatedAt = time.Now().UTC()

	if err := s.outings.Update(ctx, o); err != nil {
		return nil, err
	}

	s.invalidateReports(ctx, input.AnglerID)

	return o, nil
}

// DeleteOuting removes an outing. Catches on the outing are detached, not
// deleted.
func (s *OutingService) DeleteOuting(ctx context.Context, anglerID, id string) error {
	if err := s.outings.Delete(ctx, anglerID, id); err != nil {
		if errors.Is(err, repository.ErrOutingNotFound) {
			return ErrOutingNotFound
		}
		return err
	}

	s.invalidateReports(ctx, anglerID)

	return nil
}

func (s *OutingService) invalidateReports(ctx context.Context, anglerID string) {
	if err := s.cache.BumpRecordsVersion(ctx, anglerID); err != nil {
		s.logger.Warn("failed to bump records version", "angler_id", anglerID, "error", err)
	}
}
