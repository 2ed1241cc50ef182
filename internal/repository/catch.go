package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/creel/creel/internal/model"
)

// Common errors for catch repository operations.
var (
	ErrCatchNotFound = errors.New("catch not found")
)

// CatchRepository provides database access for catch records.
type CatchRepository struct {
	repo *Repository
}

// NewCatchRepository creates a new CatchRepository.
func NewCatchRepository(repo *Repository) *CatchRepository {
	return &CatchRepository{repo: repo}
}

const catchColumns = `
	id, angler_id, outing_id, caught_at, logged_at, venue,
	species_code, technique_code, bait_code, weight, weight_unit, time_of_day,
	weather, air_temperature, water_clarity, wind_direction,
	custom_species, custom_technique, custom_bait, custom_water_type,
	created_at, updated_at
`

// Create inserts a new catch record.
func (r *CatchRepository) Create(ctx context.Context, c *model.Catch) error {
	query := `
		INSERT INTO catches (` + catchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, NOW(), NOW())
	`

	_, err := r.repo.pool.Exec(ctx, query,
		c.ID,
		c.AnglerID,
		nullableString(c.OutingID),
		c.CaughtAt,
		c.LoggedAt,
		nullableString(c.Venue),
		nullableString(c.SpeciesCode),
		nullableString(c.TechniqueCode),
		nullableString(c.BaitCode),
		c.Weight,
		nullableString(string(c.WeightUnit)),
		nullableString(c.TimeOfDayCode),
		nullableString(c.Conditions.Weather),
		nullableString(c.Conditions.AirTemperature),
		nullableString(c.Conditions.WaterClarity),
		nullableString(c.Conditions.WindDirection),
		nullableString(c.Custom.Species),
		nullableString(c.Custom.Technique),
		nullableString(c.Custom.Bait),
		nullableString(c.Custom.WaterType),
	)
	if err != nil {
		return fmt.Errorf("failed to create catch: %w", err)
	}

	return nil
}

// GetByID retrieves one catch scoped to its owning angler.
func (r *CatchRepository) GetByID(ctx context.Context, anglerID, id string) (*model.Catch, error) {
	query := `
		SELECT ` + catchColumns + `
		FROM catches
		WHERE id = $1 AND angler_id = $2
	`

	c, err := scanCatch(r.repo.pool.QueryRow(ctx, query, id, anglerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCatchNotFound
		}
		return nil, fmt.Errorf("failed to get catch: %w", err)
	}
	return c, nil
}

// ListByAngler retrieves the angler's full catch collection in creation
// order. The stats engine relies on a stable order for its first-encounter
// tie-breaks, so the ordering here is deliberate.
func (r *CatchRepository) ListByAngler(ctx context.Context, anglerID string) ([]*model.Catch, error) {
	query := `
		SELECT ` + catchColumns + `
		FROM catches
		WHERE angler_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.repo.pool.Query(ctx, query, anglerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list catches: %w", err)
	}
	defer rows.Close()

	var catches []*model.Catch
	for rows.Next() {
		c, err := scanCatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catch: %w", err)
		}
		catches = append(catches, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catches: %w", err)
	}

	return catches, nil
}

// Update rewrites the mutable fields of a catch.
func (r *CatchRepository) Update(ctx context.Context, c *model.Catch) error {
	query := `
		UPDATE catches SET
			outing_id = $3, caught_at = $4, venue = $5,
			species_code = $6, technique_code = $7, bait_code = $8,
			weight = $9, weight_unit = $10, time_of_day = $11,
			weather = $12, air_temperature = $13, water_clarity = $14, wind_direction = $15,
			custom_species = $16, custom_technique = $17, custom_bait = $18, custom_water_type = $19,
			updated_at = NOW()
		WHERE id = $1 AND angler_id = $2
	`

	result, err := r.repo.pool.Exec(ctx, query,
		c.ID,
		c.AnglerID,
		nullableString(c.OutingID),
		c.CaughtAt,
		nullableString(c.Venue),
		nullableString(c.SpeciesCode),
		nullableString(c.TechniqueCode),
		nullableString(c.BaitCode),
		c.Weight,
		nullableString(string(c.WeightUnit)),
		nullableString(c.TimeOfDayCode),
		nullableString(c.Conditions.Weather),
		nullableString(c.Conditions.AirTemperature),
		nullableString(c.Conditions.WaterClarity),
		nullableString(c.Conditions.WindDirection),
		nullableString(c.Custom.Species),
		nullableString(c.Custom.Technique),
		nullableString(c.Custom.Bait),
		nullableString(c.Custom.WaterType),
	)
	if err != nil {
		return fmt.Errorf("failed to update catch: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCatchNotFound
	}

	return nil
}

// Delete removes a catch scoped to its owning angler.
func (r *CatchRepository) Delete(ctx context.Context, anglerID, id string) error {
	result, err := r.repo.pool.Exec(ctx,
		`DELETE FROM catches WHERE id = $1 AND angler_id = $2`, id, anglerID)
	if err != nil {
		return fmt.Errorf("failed to delete catch: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCatchNotFound
	}
	return nil
}

// scanCatch scans one catch row; pgx.Row and pgx.Rows share Scan.
func scanCatch(row pgx.Row) (*model.Catch, error) {
	var c model.Catch
	var outingID, venue, speciesCode, techniqueCode, baitCode *string
	var weightUnit, timeOfDay *string
	var weather, airTemp, clarity, wind *string
	var customSpecies, customTechnique, customBait, customWater *string

	err := row.Scan(
		&c.ID,
		&c.AnglerID,
		&outingID,
		&c.CaughtAt,
		&c.LoggedAt,
		&venue,
		&speciesCode,
		&techniqueCode,
		&baitCode,
		&c.Weight,
		&weightUnit,
		&timeOfDay,
		&weather,
		&airTemp,
		&clarity,
		&wind,
		&customSpecies,
		&customTechnique,
		&customBait,
		&customWater,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.OutingID = deref(outingID)
	c.Venue = deref(venue)
	c.SpeciesCode = deref(speciesCode)
	c.TechniqueCode = deref(techniqueCode)
	c.BaitCode = deref(baitCode)
	c.WeightUnit = model.WeightUnit(deref(weightUnit))
	c.TimeOfDayCode = deref(timeOfDay)
	c.Conditions = model.Conditions{
		Weather:        deref(weather),
		AirTemperature: deref(airTemp),
		WaterClarity:   deref(clarity),
		WindDirection:  deref(wind),
	}
	c.Custom = model.CustomFields{
		Species:   deref(customSpecies),
		Technique: deref(customTechnique),
		Bait:      deref(customBait),
		WaterType: deref(customWater),
	}

	return &c, nil
}

// nullableString maps empty strings to SQL NULL.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
