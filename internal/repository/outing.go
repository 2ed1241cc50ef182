package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/creel/creel/internal/model"
)

// Common errors for outing repository operations.
var (
	ErrOutingNotFound = errors.New("outing not found")
)

// OutingRepository provides database access for outings.
type OutingRepository struct {
	repo *Repository
}

// NewOutingRepository creates a new OutingRepository.
func NewOutingRepository(repo *Repository) *OutingRepository {
	return &OutingRepository{repo: repo}
}

const outingColumns = `id, angler_id, title, venue, date, created_at, updated_at`

// Create inserts a new outing.
func (r *OutingRepository) Create(ctx context.Context, o *model.Outing) error {
	query := `
		INSERT INTO outings (` + outingColumns + `)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`

	_, err := r.repo.pool.Exec(ctx, query,
		o.ID,
		o.AnglerID,
		nullableString(o.Title),
		nullableString(o.Venue),
		o.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to create outing: %w", err)
	}
	return nil
}

// GetByID retrieves one outing scoped to its owning angler.
func (r *OutingRepository) GetByID(ctx context.Context, anglerID, id string) (*model.Outing, error) {
	query := `
		SELECT ` + outingColumns + `
		FROM outings
		WHERE id = $1 AND angler_id = $2
	`

	o, err := scanOuting(r.repo.pool.QueryRow(ctx, query, id, anglerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOutingNotFound
		}
		return nil, fmt.Errorf("failed to get outing: %w", err)
	}
	return o, nil
}

// ListByAngler retrieves the angler's outings, newest first by effective date.
func (r *OutingRepository) ListByAngler(ctx context.Context, anglerID string) ([]*model.Outing, error) {
	query := `
		SELECT ` + outingColumns + `
		FROM outings
		WHERE angler_id = $1
		ORDER BY COALESCE(date, created_at) DESC, id ASC
	`

	rows, err := r.repo.pool.Query(ctx, query, anglerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outings: %w", err)
	}
	defer rows.Close()

	var outings []*model.Outing
	for rows.Next() {
		o, err := scanOuting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outing: %w", err)
		}
		outings = append(outings, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outings: %w", err)
	}

	return outings, nil
}

// Update rewrites the mutable fields of an outing.
func (r *OutingRepository) Update(ctx context.Context, o *model.Outing) error {
	query := `
		UPDATE outings SET title = $3, venue = $4, date = $5, updated_at = NOW()
		WHERE id = $1 AND angler_id = $2
	`

	result, err := r.repo.pool.Exec(ctx, query,
		o.ID,
		o.AnglerID,
		nullableString(o.Title),
		nullableString(o.Venue),
		o.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to update outing: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrOutingNotFound
	}
	return nil
}

// Delete removes an outing and detaches its catches.
func (r *OutingRepository) Delete(ctx context.Context, anglerID, id string) error {
	tx, err := r.repo.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete outing: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE catches SET outing_id = NULL WHERE outing_id = $1 AND angler_id = $2`, id, anglerID); err != nil {
		return fmt.Errorf("failed to detach catches: %w", err)
	}

	result, err := tx.Exec(ctx,
		`DELETE FROM outings WHERE id = $1 AND angler_id = $2`, id, anglerID)
	if err != nil {
		return fmt.Errorf("failed to delete outing: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrOutingNotFound
	}

	return tx.Commit(ctx)
}

// scanOuting scans one outing row.
func scanOuting(row pgx.Row) (*model.Outing, error) {
	var o model.Outing
	var title, venue *string

	err := row.Scan(
		&o.ID,
		&o.AnglerID,
		&title,
		&venue,
		&o.Date,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.Title = deref(title)
	o.Venue = deref(venue)
	return &o, nil
}
