package service

import (
	"context"

	"github.com/creel/creel/internal/model"
	"github.com/creel/creel/internal/repository"
)

// ActivityService reads the persisted social activity feed.
type ActivityService struct {
	activity *repository.ActivityRepository
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activity *repository.ActivityRepository) *ActivityService {
	return &ActivityService{activity: activity}
}

// ListRecent returns the most recent feed entries, newest first.
func (s *ActivityService) ListRecent(ctx context.Context, limit int) ([]*model.ActivityEvent, error) {
	return s.activity.ListRecent(ctx, limit)
}
