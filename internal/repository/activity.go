package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/creel/creel/internal/model"
)

// ActivityRepository provides database access for activity feed events.
type ActivityRepository struct {
	repo *Repository
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(repo *Repository) *ActivityRepository {
	return &ActivityRepository{repo: repo}
}

// BulkInsert inserts feed events with idempotency via ON CONFLICT DO NOTHING.
// The feed worker replays unacknowledged stream messages, so duplicate
// event_ids are expected and harmless.
func (r *ActivityRepository) BulkInsert(ctx context.Context, events []*model.ActivityEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}

	query := `
		INSERT INTO activity_events (
			id, event_id, catch_id, angler_id, species_label, weight_kg, venue, logged_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (event_id) DO NOTHING
	`

	for _, event := range events {
		batch.Queue(query,
			event.ID,
			event.EventID,
			event.CatchID,
			event.AnglerID,
			nullableString(event.SpeciesLabel),
			event.WeightKg,
			nullableString(event.Venue),
			event.LoggedAt,
		)
	}

	results := r.repo.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(events); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert event %d: %w", i, err)
		}
	}

	return nil
}

// ListRecent returns the newest feed events across all anglers, newest first.
func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]*model.ActivityEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
		SELECT id, event_id, catch_id, angler_id, species_label, weight_kg, venue, logged_at, created_at
		FROM activity_events
		ORDER BY logged_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.repo.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity events: %w", err)
	}
	defer rows.Close()

	var events []*model.ActivityEvent
	for rows.Next() {
		var e model.ActivityEvent
		var species, venue *string
		if err := rows.Scan(
			&e.ID, &e.EventID, &e.CatchID, &e.AnglerID,
			&species, &e.WeightKg, &venue, &e.LoggedAt, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity event: %w", err)
		}
		e.SpeciesLabel = deref(species)
		e.Venue = deref(venue)
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity events: %w", err)
	}

	return events, nil
}
