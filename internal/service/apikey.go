package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/creel/creel/internal/auth"
	"github.com/creel/creel/internal/cache"
	"github.com/creel/creel/internal/model"
	"github.com/creel/creel/internal/repository"
)

// API key service errors.
var (
	// ErrKeyNotFound covers missing, revoked, and foreign keys alike so the
	// API cannot be used to enumerate key IDs.
	ErrKeyNotFound  = errors.New("api key not found")
	ErrInvalidScope = errors.New("invalid scope")
)

// APIKeyService owns the lifecycle of an angler's API keys: minting,
// listing, revocation, and rotation.
type APIKeyService struct {
	repo   *repository.Repository
	cache  *cache.Cache
	logger *slog.Logger
}

// NewAPIKeyService creates a new APIKeyService.
func NewAPIKeyService(repo *repository.Repository, c *cache.Cache, logger *slog.Logger) *APIKeyService {
	return &APIKeyService{
		repo:   repo,
		cache:  c,
		logger: logger.With("component", "service.apikey"),
	}
}

// CreatedKey pairs a stored key with its plaintext, which exists only for
// the duration of the create or rotate call.
type CreatedKey struct {
	Key       *model.APIKey
	Plaintext string
}

// Create mints a key for anglerID with the given scopes. Empty scopes
// default to read-only.
func (s *APIKeyService) Create(ctx context.Context, anglerID, name string, scopes []string) (*CreatedKey, error) {
	for _, scope := range scopes {
		if !slices.Contains(model.ValidScopes, scope) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidScope, scope)
		}
	}
	if len(scopes) == 0 {
		scopes = []string{model.ScopeRead}
	}

	created, err := s.mint(ctx, &model.APIKey{
		AnglerID:      anglerID,
		Scopes:        scopes,
		RateLimitTier: model.TierFree,
		Name:          name,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("API key created",
		slog.String("key_id", created.Key.ID),
		slog.String("key_prefix", created.Key.KeyPrefix),
		slog.String("angler_id", anglerID),
	)
	return created, nil
}

// List returns all of the angler's keys, revoked ones included.
func (s *APIKeyService) List(ctx context.Context, anglerID string) ([]*model.APIKey, error) {
	keys, err := s.repo.ListAPIKeysByAnglerID(ctx, anglerID)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	return keys, nil
}

// Revoke revokes one of the angler's active keys and drops any cached auth
// contexts so the key stops working immediately.
func (s *APIKeyService) Revoke(ctx context.Context, anglerID, keyID string) error {
	if _, err := s.ownedActiveKey(ctx, anglerID, keyID); err != nil {
		return err
	}

	if err := s.repo.RevokeAPIKey(ctx, keyID); err != nil {
		return fmt.Errorf("revoke api key: %w", err)
	}

	if err := s.cache.InvalidateAnglerAuthContexts(ctx, anglerID); err != nil {
		s.logger.Warn("auth cache invalidation failed", "angler_id", anglerID, "error", err)
	}

	s.logger.Info("API key revoked",
		slog.String("key_id", keyID),
		slog.String("angler_id", anglerID),
	)
	return nil
}

// RotatedKey reports the outcome of a rotation.
type RotatedKey struct {
	OldKeyID  string
	RevokedAt time.Time
	New       *CreatedKey
}

// Rotate mints a replacement with the old key's name, scopes, and tier, then
// revokes the old key. The new key is created first so the angler is never
// left without a working credential.
func (s *APIKeyService) Rotate(ctx context.Context, anglerID, keyID string) (*RotatedKey, error) {
	old, err := s.ownedActiveKey(ctx, anglerID, keyID)
	if err != nil {
		return nil, err
	}

	created, err := s.mint(ctx, &model.APIKey{
		AnglerID:      old.AnglerID,
		Scopes:        old.Scopes,
		RateLimitTier: old.RateLimitTier,
		Name:          old.Name,
	})
	if err != nil {
		return nil, err
	}

	revokedAt := time.Now()
	if err := s.repo.RevokeAPIKey(ctx, old.ID); err != nil {
		// The replacement already exists; report success and let the angler
		// retry the revocation.
		s.logger.Error("failed to revoke old key during rotation",
			slog.String("old_key_id", old.ID),
			slog.String("error", err.Error()),
		)
	} else if err := s.cache.InvalidateAnglerAuthContexts(ctx, anglerID); err != nil {
		s.logger.Warn("auth cache invalidation failed", "angler_id", anglerID, "error", err)
	}

	s.logger.Info("API key rotated",
		slog.String("old_key_id", old.ID),
		slog.String("new_key_id", created.Key.ID),
		slog.String("angler_id", anglerID),
	)

	return &RotatedKey{OldKeyID: old.ID, RevokedAt: revokedAt, New: created}, nil
}

// mint fills in the generated fields of key, hashes the plaintext, and
// stores it.
func (s *APIKeyService) mint(ctx context.Context, key *model.APIKey) (*CreatedKey, error) {
	generated, err := auth.GenerateAPIKey(auth.EnvLive)
	if err != nil {
		return nil, fmt.Errorf("generate api key: %w", err)
	}

	key.ID = ulid.Make().String()
	key.KeyHash = generated.Hash
	key.KeyPrefix = generated.Prefix
	key.CreatedAt = time.Now()

	if err := s.repo.CreateAPIKey(ctx, key); err != nil {
		return nil, fmt.Errorf("store api key: %w", err)
	}
	return &CreatedKey{Key: key, Plaintext: generated.Plaintext}, nil
}

// ownedActiveKey loads keyID and checks it belongs to anglerID and is still
// active. Every failure collapses into ErrKeyNotFound.
func (s *APIKeyService) ownedActiveKey(ctx context.Context, anglerID, keyID string) (*model.APIKey, error) {
	key, err := s.repo.GetAPIKeyByID(ctx, keyID)
	if err != nil {
		return nil, ErrKeyNotFound
	}
	if key.AnglerID != anglerID || key.IsRevoked() {
		return nil, ErrKeyNotFound
	}
	return key, nil
}
