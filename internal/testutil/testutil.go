// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/creel/creel/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420420

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// resetSchema drops and recreates one migration's schema.
func resetSchema(ctx context.Context, pool *pgxpool.Pool, migration string) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	downSQL, err := os.ReadFile(filepath.Join(root, "migrations", migration+".down.sql"))
	if err != nil {
		return fmt.Errorf("read down migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
		return fmt.Errorf("apply down migration: %w", err)
	}

	upSQL, err := os.ReadFile(filepath.Join(root, "migrations", migration+".up.sql"))
	if err != nil {
		return fmt.Errorf("read up migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
		return fmt.Errorf("apply up migration: %w", err)
	}

	return nil
}

// ResetAPIKeysSchema drops and recreates the api_keys table for tests.
func ResetAPIKeysSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return resetSchema(ctx, pool, "000001_api_keys")
}

// ResetOutingsSchema drops and recreates the outings table for tests.
// Drop catches first; they carry a foreign key onto outings.
func ResetOutingsSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return resetSchema(ctx, pool, "000002_outings")
}

// ResetCatchesSchema drops and recreates the catches table for tests.
func ResetCatchesSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return resetSchema(ctx, pool, "000003_catches")
}

// ResetActivitySchema drops and recreates the activity_events table for tests.
func ResetActivitySchema(ctx context.Context, pool *pgxpool.Pool) error {
	return resetSchema(ctx, pool, "000004_activity_events")
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestCatch creates a catch with sensible defaults.
func NewTestCatch(t testing.TB, anglerID string) *model.Catch {
	t.Helper()
	now := time.Now().UTC()
	weight := 1.4
	return &model.Catch{
		ID:          UniqueID("catch"),
		AnglerID:    anglerID,
		CaughtAt:    &now,
		LoggedAt:    &now,
		Venue:       "Test Water",
		SpeciesCode: "perch",
		Weight:      &weight,
		WeightUnit:  model.UnitKilograms,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewTestOuting creates an outing with sensible defaults.
func NewTestOuting(t testing.TB, anglerID string) *model.Outing {
	t.Helper()
	now := time.Now().UTC()
	return &model.Outing{
		ID:        UniqueID("outing"),
		AnglerID:  anglerID,
		Title:     "Test Outing",
		Venue:     "Test Water",
		Date:      &now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestAPIKey creates an API key with sensible defaults.
func NewTestAPIKey(t testing.TB, anglerID string) *model.APIKey {
	t.Helper()
	return &model.APIKey{
		ID:            UniqueID("key"),
		AnglerID:      anglerID,
		KeyHash:       UniqueID("hash"),
		KeyPrefix:     "ck_test_",
		Scopes:        []string{model.ScopeRead, model.ScopeWrite},
		RateLimitTier: model.TierFree,
		Name:          "Test Key",
		CreatedAt:     time.Now().UTC(),
	}
}

// NewTestAPIKeyWithTier creates an API key with a specific rate limit tier.
func NewTestAPIKeyWithTier(t testing.TB, anglerID, tier string) *model.APIKey {
	t.Helper()
	key := NewTestAPIKey(t, anglerID)
	key.RateLimitTier = tier
	return key
}

// UniqueID generates a unique identifier for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
