package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache key prefixes and TTLs for stats report memoization.
const (
	reportKeyPrefix  = "report:"
	versionKeyPrefix = "records:version:"

	// DefaultReportTTL bounds how long a memoized report is served when no
	// write invalidates it first.
	DefaultReportTTL = 10 * time.Minute
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// RecordsVersion returns the angler's record-collection version. The
// version participates in report cache keys, so bumping it on any catch or
// outing write implicitly invalidates every memoized report for the angler.
// A missing key reads as version 0; a Redis read failure is returned so the
// caller can skip memoization rather than serve under a stale version.
func (c *Cache) RecordsVersion(ctx context.Context, anglerID string) (int64, error) {
	val, err := c.client.Get(ctx, versionKeyPrefix+anglerID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get records version: %w", err)
	}
	version, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse records version %q: %w", val, err)
	}
	return version, nil
}

// BumpRecordsVersion increments the angler's record-collection version.
func (c *Cache) BumpRecordsVersion(ctx context.Context, anglerID string) error {
	if err := c.client.Incr(ctx, versionKeyPrefix+anglerID).Err(); err != nil {
		return fmt.Errorf("incr records version: %w", err)
	}
	return nil
}

// GetReport retrieves a memoized report payload by cache key.
// Returns ErrCacheMiss when absent.
func (c *Cache) GetReport(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, ErrCacheMiss
	}
	return data, nil
}

// SetReport memoizes a computed report payload.
func (c *Cache) SetReport(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache report: %w", err)
	}
	return nil
}

// ReportKey derives the cache key for one (angler, collection version,
// filter tuple) combination. Pure; safe to call without a Cache.
func ReportKey(anglerID string, version int64, fingerprint string) string {
	return reportKeyPrefix + anglerID + ":" + strconv.FormatInt(version, 10) + ":" + fingerprint
}

// FilterFingerprint hashes the resolved filter tuple into a fixed-length
// key component. Pure and deterministic for identical part sequences.
func FilterFingerprint(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(hash[:16]) // 32 hex chars
}
