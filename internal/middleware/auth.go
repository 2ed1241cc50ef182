package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/creel/creel/internal/auth"
	"github.com/creel/creel/internal/cache"
	"github.com/creel/creel/internal/model"
	"github.com/creel/creel/internal/repository"
)

// minAuthDuration is the floor on rejection time. Holding every failure to
// the same wall-clock duration keeps the failure mode (unknown prefix, bad
// secret, malformed key) unobservable through timing.
const minAuthDuration = 200 * time.Millisecond

// AuthConfig holds the collaborators the auth middleware needs.
type AuthConfig struct {
	Logger     *slog.Logger
	Repository *repository.Repository
	Cache      *cache.Cache
}

// authenticator resolves a bearer API key into an AuthContext. It checks the
// auth cache first and falls back to a prefix lookup plus argon2 verification.
type authenticator struct {
	logger *slog.Logger
	repo   *repository.Repository
	cache  *cache.Cache
}

// Auth returns middleware that authenticates every request via API key and
// injects the resolved AuthContext into the request context.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	a := &authenticator{logger: cfg.Logger, repo: cfg.Repository, cache: cfg.Cache}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			authCtx, cacheHit, reason := a.authenticate(r.Context(), bearerKey(r))

			if authCtx == nil {
				a.logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				holdUntil(start)
				writeAuthError(w)
				return
			}

			a.logger.Info("authentication successful",
				slog.String("key_id", authCtx.KeyID),
				slog.String("key_prefix", authCtx.KeyPrefix),
				slog.String("angler_id", authCtx.AnglerID),
				slog.String("ip", r.RemoteAddr),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.Bool("cache_hit", cacheHit),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			next.ServeHTTP(w, r.WithContext(auth.ContextWithAuth(r.Context(), authCtx)))
		})
	}
}

// authenticate returns the auth context for key, or nil with a failure reason.
func (a *authenticator) authenticate(ctx context.Context, key string) (*model.AuthContext, bool, string) {
	if key == "" {
		return nil, false, "missing_key"
	}

	parsed, err := auth.ParseAPIKey(key)
	if err != nil {
		return nil, false, "invalid_format"
	}

	digest := auth.KeyDigest(key)
	if cached, _ := a.cache.GetAuthContext(ctx, digest); cached != nil {
		return cached, true, ""
	}

	matched, reason := a.verifyAgainstStored(ctx, key, parsed.Prefix)
	if matched == nil {
		return nil, false, reason
	}

	authCtx := &model.AuthContext{
		KeyID:         matched.ID,
		KeyPrefix:     matched.KeyPrefix,
		AnglerID:      matched.AnglerID,
		Scopes:        matched.Scopes,
		RateLimitTier: matched.RateLimitTier,
	}
	_ = a.cache.SetAuthContext(ctx, digest, authCtx)

	go func() {
		_ = a.repo.UpdateAPIKeyLastUsed(context.WithoutCancel(ctx), matched.ID)
	}()

	return authCtx, false, ""
}

// verifyAgainstStored loads all active keys sharing the prefix and checks the
// plaintext against each hash. Prefixes can collide, so every candidate is
// tried before giving up.
func (a *authenticator) verifyAgainstStored(ctx context.Context, key, prefix string) (*model.APIKey, string) {
	candidates, err := a.repo.GetAPIKeysByPrefix(ctx, prefix)
	if err != nil {
		a.logger.Error("database error during auth",
			slog.String("error", err.Error()),
			slog.String("request_id", GetRequestID(ctx)),
		)
		return nil, "lookup_error"
	}

	for _, k := range candidates {
		if ok, err := auth.VerifyAPIKey(key, k.KeyHash); err == nil && ok {
			return k, ""
		}
	}
	return nil, "invalid_key"
}

// holdUntil sleeps until minAuthDuration has elapsed since start.
func holdUntil(start time.Time) {
	if rest := minAuthDuration - time.Since(start); rest > 0 {
		time.Sleep(rest)
	}
}

// bearerKey pulls the API key from "Authorization: Bearer <key>", falling
// back to the X-API-Key header.
func bearerKey(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.Header.Get("X-API-Key")
}

// writeAuthError writes a 401 with a single message for every auth failure so
// responses cannot be used to enumerate keys.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"Invalid or missing API key"}}`))
}
