package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/creel/creel/internal/model"
)

const (
	// authCtxPrefix keys cached auth contexts by key digest.
	authCtxPrefix = "auth:ctx:"
	// anglerKeysPrefix keys the per-angler set of cached digests, so all of
	// an angler's contexts can be dropped on revocation.
	anglerKeysPrefix = "auth:angler:"
	authCacheTTL     = 5 * time.Minute
)

// cachedAuthContext is the wire form of a cached auth context.
type cachedAuthContext struct {
	KeyID         string   `json:"key_id"`
	KeyPrefix     string   `json:"key_prefix"`
	AnglerID      string   `json:"angler_id"`
	Scopes        []string `json:"scopes"`
	RateLimitTier string   `json:"rate_limit_tier"`
}

// GetAuthContext returns the cached auth context for a key digest. A miss or
// an undecodable entry both read as nil; authentication then falls back to
// the database.
func (c *Cache) GetAuthContext(ctx context.Context, digest string) (*model.AuthContext, error) {
	data, err := c.client.Get(ctx, authCtxPrefix+digest).Bytes()
	if err != nil {
		return nil, nil //nolint:nilerr
	}

	var cached cachedAuthContext
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, nil //nolint:nilerr
	}

	return &model.AuthContext{
		KeyID:         cached.KeyID,
		KeyPrefix:     cached.KeyPrefix,
		AnglerID:      cached.AnglerID,
		Scopes:        cached.Scopes,
		RateLimitTier: cached.RateLimitTier,
	}, nil
}

// SetAuthContext caches an auth context under its key digest and records the
// digest in the angler's set for later invalidation.
func (c *Cache) SetAuthContext(ctx context.Context, digest string, authCtx *model.AuthContext) error {
	data, err := json.Marshal(cachedAuthContext{
		KeyID:         authCtx.KeyID,
		KeyPrefix:     authCtx.KeyPrefix,
		AnglerID:      authCtx.AnglerID,
		Scopes:        authCtx.Scopes,
		RateLimitTier: authCtx.RateLimitTier,
	})
	if err != nil {
		return fmt.Errorf("marshal auth context: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, authCtxPrefix+digest, data, authCacheTTL)
	anglerKey := anglerKeysPrefix + authCtx.AnglerID
	pipe.SAdd(ctx, anglerKey, digest)
	// The set outlives the contexts slightly so invalidation still sees
	// entries that are about to expire.
	pipe.Expire(ctx, anglerKey, 2*authCacheTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteAuthContext removes one cached auth context.
func (c *Cache) DeleteAuthContext(ctx context.Context, digest string) error {
	return c.client.Del(ctx, authCtxPrefix+digest).Err()
}

// InvalidateAnglerAuthContexts drops every cached auth context recorded for
// the angler. Called on key revocation so a revoked key stops authenticating
// before its cache TTL runs out.
func (c *Cache) InvalidateAnglerAuthContexts(ctx context.Context, anglerID string) error {
	anglerKey := anglerKeysPrefix + anglerID
	digests, err := c.client.SMembers(ctx, anglerKey).Result()
	if err != nil {
		return fmt.Errorf("read angler auth digests: %w", err)
	}

	keys := make([]string, 0, len(digests)+1)
	for _, digest := range digests {
		keys = append(keys, authCtxPrefix+digest)
	}
	keys = append(keys, anglerKey)
	return c.client.Del(ctx, keys...).Err()
}
