// Package feed provides activity event capture and processing for the
// social feed. Catch events are published to a Redis stream and drained
// into Postgres by a background worker.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/creel/creel/internal/metrics"
	"github.com/creel/creel/internal/model"
)

const (
	// StreamKey is the Redis stream for catch events.
	StreamKey = "stream:catch_events"

	// DeadLetterStreamKey is the Redis stream for poison messages.
	DeadLetterStreamKey = "stream:catch_events:dlq"

	// MaxStreamLen is the approximate max length of the stream.
	MaxStreamLen = 100000

	// PublishTimeout is the max time to wait for Redis publish.
	PublishTimeout = 100 * time.Millisecond

	// maxLabelLength bounds the denormalized display fields.
	maxLabelLength = 200
)

// CatchLoggedPayload is the compressed event format for the Redis stream.
type CatchLoggedPayload struct {
	CatchID      string   `json:"cid"`          // catch_id
	AnglerID     string   `json:"aid"`          // angler_id
	SpeciesLabel string   `json:"sp,omitempty"` // display species (truncated)
	WeightKg     *float64 `json:"w,omitempty"`  // normalized weight
	Venue        string   `json:"v,omitempty"`  // venue (truncated)
	LoggedAt     int64    `json:"t"`            // Unix milliseconds
}

// NewCatchLoggedPayload builds a stream payload from a catch. The weight
// must already be normalized to kilograms; display fields are truncated so
// a single oversized record cannot bloat the stream.
func NewCatchLoggedPayload(c *model.Catch, speciesLabel string, weightKg *float64, loggedAt time.Time) CatchLoggedPayload {
	return CatchLoggedPayload{
		CatchID:      c.ID,
		AnglerID:     c.AnglerID,
		SpeciesLabel: TruncateLabel(speciesLabel),
		WeightKg:     weightKg,
		Venue:        TruncateLabel(c.Venue),
		LoggedAt:     loggedAt.UnixMilli(),
	}
}

// TruncateLabel truncates a display field to maxLabelLength chars.
func TruncateLabel(s string) string {
	if len(s) > maxLabelLength {
		return s[:maxLabelLength]
	}
	return s
}

// Publisher enqueues catch events to the Redis stream.
type Publisher struct {
	redis   *redis.Client
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewPublisher creates a new feed event publisher.
func NewPublisher(client *redis.Client, logger *slog.Logger, recorder metrics.Recorder) *Publisher {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Publisher{
		redis:   client,
		logger:  logger.With("component", "feed.publisher"),
		metrics: recorder,
	}
}

// Publish adds a catch event to the stream synchronously.
func (p *Publisher) Publish(ctx context.Context, event CatchLoggedPayload) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}

	result, err := p.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: MaxStreamLen,
		Approx: true, // ~MAXLEN for performance
		ID:     "*",  // Auto-generate ID
		Values: map[string]interface{}{
			"payload": string(data),
		},
	}).Result()

	if err != nil {
		return "", fmt.Errorf("xadd: %w", err)
	}

	return result, nil
}

// PublishAsync publishes without blocking the caller.
// Errors are logged but not returned (fire-and-forget).
func (p *Publisher) PublishAsync(event CatchLoggedPayload) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()

		streamID, err := p.Publish(ctx, event)
		if err != nil {
			p.logger.Warn("failed to publish catch event",
				"catch_id", event.CatchID,
				"error", err,
			)
			p.metrics.IncFeedEventPublished("dropped")
			return
		}

		p.logger.Debug("catch event published",
			"catch_id", event.CatchID,
			"stream_id", streamID,
		)
		p.metrics.IncFeedEventPublished("success")
	}()
}
