package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/creel/creel/internal/metrics"
	"github.com/creel/creel/internal/model"
)

// ConsumerGroup is the Redis consumer group shared by all feed workers.
const ConsumerGroup = "feed_workers"

// dlqMaxLen caps the dead letter stream so poison messages cannot grow it
// without bound.
const dlqMaxLen = 10000

// Repository persists decoded activity events. BulkInsert must be idempotent
// on EventID so a redelivered batch is harmless.
type Repository interface {
	BulkInsert(ctx context.Context, events []*model.ActivityEvent) error
}

// Config tunes the worker. Zero fields take the defaults.
type Config struct {
	BatchSize       int           // max entries per read (default 200)
	BlockTimeout    time.Duration // XREADGROUP block time (default 5s)
	MaxAttempts     int           // insert attempts per batch (default 3)
	ClaimInterval   time.Duration // how often to sweep stale pending entries (default 10s)
	ClaimIdle       time.Duration // pending idle time before a sweep takes an entry (default 30s)
	MetricsInterval time.Duration // queue depth gauge refresh (default 5s)
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = 200
	}
	if c.BlockTimeout <= 0 {
		c.BlockTimeout = 5 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.ClaimInterval <= 0 {
		c.ClaimInterval = 10 * time.Second
	}
	if c.ClaimIdle <= 0 {
		c.ClaimIdle = 30 * time.Second
	}
	if c.MetricsInterval <= 0 {
		c.MetricsInterval = 5 * time.Second
	}
	return c
}

// Worker consumes catch events from the stream and lands them in the
// activity feed table. Decoding failures go to the dead letter stream;
// insert failures leave the entries pending for a later sweep.
type Worker struct {
	redis      *redis.Client
	repo       Repository
	logger     *slog.Logger
	metrics    metrics.Recorder
	consumerID string
	cfg        Config

	// claimCursor tracks XAUTOCLAIM progress across sweeps.
	claimCursor string

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewWorker creates a feed worker. The recorder may be nil.
func NewWorker(client *redis.Client, repo Repository, logger *slog.Logger, consumerID string, recorder metrics.Recorder, cfg Config) *Worker {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Worker{
		redis:       client,
		repo:        repo,
		logger:      logger.With("component", "feed.worker", "consumer_id", consumerID),
		metrics:     recorder,
		consumerID:  consumerID,
		cfg:         cfg.withDefaults(),
		claimCursor: "0-0",
	}
}

// Run consumes until ctx is cancelled. It may be called once per Worker.
func (w *Worker) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return errors.New("worker already started")
	}
	w.started = true
	w.stopped = make(chan struct{})
	ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	defer close(w.stopped)

	if err := w.createGroup(ctx); err != nil {
		return fmt.Errorf("create consumer group: %w", err)
	}

	claimTick := time.NewTicker(w.cfg.ClaimInterval)
	defer claimTick.Stop()
	depthTick := time.NewTicker(w.cfg.MetricsInterval)
	defer depthTick.Stop()

	w.logger.Info("feed worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("feed worker stopping")
			return nil
		case <-depthTick.C:
			w.gaugeQueueDepth(ctx)
		case <-claimTick.C:
			if err := w.consume(ctx, w.claimStale); err != nil && ctx.Err() == nil {
				w.logger.Warn("stale entry sweep failed", "error", err)
			}
		default:
			if err := w.consume(ctx, w.fetch); err != nil && ctx.Err() == nil {
				w.logger.Error("consume failed", "error", err)
				time.Sleep(time.Second)
			}
		}
	}
}

// Shutdown stops the run loop and waits for the in-flight batch, bounded by
// ctx. Implements server.ShutdownFunc.
func (w *Worker) Shutdown(ctx context.Context) error {
	w.mu.Lock()
	cancel, stopped := w.cancel, w.stopped
	w.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-stopped:
		w.logger.Info("feed worker shutdown complete")
		return nil
	case <-ctx.Done():
		w.logger.Warn("feed worker shutdown timed out")
		return ctx.Err()
	}
}

// consume pulls one batch from source, lands the decodable entries, and
// acknowledges everything that was either stored or dead-lettered.
func (w *Worker) consume(ctx context.Context, source func(context.Context) ([]redis.XMessage, error)) error {
	msgs, err := source(ctx)
	if err != nil || len(msgs) == 0 {
		return err
	}

	events := make([]*model.ActivityEvent, 0, len(msgs))
	ids := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		ids = append(ids, msg.ID)

		event, reason, err := decodeMessage(msg)
		if err != nil {
			w.reject(ctx, msg, reason, err)
			continue
		}
		events = append(events, event)
	}

	if len(events) > 0 {
		if err := w.store(ctx, events); err != nil {
			// Leave the whole read pending; the sweep or a restart retries it.
			return err
		}
	}
	return w.acknowledge(ctx, ids)
}

// fetch reads fresh entries for this consumer, blocking up to BlockTimeout.
func (w *Worker) fetch(ctx context.Context) ([]redis.XMessage, error) {
	streams, err := w.redis.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    ConsumerGroup,
		Consumer: w.consumerID,
		Streams:  []string{StreamKey, ">"},
		Count:    int64(w.cfg.BatchSize),
		Block:    w.cfg.BlockTimeout,
	}).Result()
	if errors.Is(err, redis.Nil) || len(streams) == 0 {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("xreadgroup: %w", err)
	}
	return streams[0].Messages, nil
}

// claimStale takes over pending entries another consumer left idle past
// ClaimIdle, resuming from where the previous sweep stopped.
func (w *Worker) claimStale(ctx context.Context) ([]redis.XMessage, error) {
	msgs, cursor, err := w.redis.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   StreamKey,
		Group:    ConsumerGroup,
		Consumer: w.consumerID,
		MinIdle:  w.cfg.ClaimIdle,
		Start:    w.claimCursor,
		Count:    int64(w.cfg.BatchSize),
	}).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("xautoclaim: %w", err)
	}
	if cursor != "" {
		w.claimCursor = cursor
	}
	return msgs, nil
}

// store inserts a batch, retrying with exponential backoff. BulkInsert skips
// rows whose EventID already landed, so retries never duplicate.
func (w *Worker) store(ctx context.Context, events []*model.ActivityEvent) error {
	var lastErr error
	for attempt := 1; attempt <= w.cfg.MaxAttempts; attempt++ {
		start := time.Now()
		if lastErr = w.repo.BulkInsert(ctx, events); lastErr == nil {
			w.observeBatch(events, time.Since(start))
			return nil
		}

		backoff := time.Duration(1<<attempt) * time.Second
		w.logger.Warn("activity insert failed",
			"attempt", attempt,
			"batch_size", len(events),
			"backoff_seconds", backoff.Seconds(),
			"error", lastErr,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	for range events {
		w.metrics.IncFeedEventProcessed("failed")
	}
	return fmt.Errorf("bulk insert after %d attempts: %w", w.cfg.MaxAttempts, lastErr)
}

func (w *Worker) observeBatch(events []*model.ActivityEvent, took time.Duration) {
	w.logger.Info("batch processed",
		"events_count", len(events),
		"duration_ms", float64(took.Microseconds())/1000,
	)
	w.metrics.ObserveFeedBatchSize(len(events))
	w.metrics.ObserveFeedBatchDuration(took)
	for _, event := range events {
		w.metrics.IncFeedEventProcessed("success")
		w.metrics.ObserveFeedIngestLag(time.Since(event.LoggedAt))
	}
}

// acknowledge removes entries from the pending list once handled.
func (w *Worker) acknowledge(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := w.redis.XAck(ctx, StreamKey, ConsumerGroup, ids...).Err(); err != nil {
		return fmt.Errorf("xack: %w", err)
	}
	return nil
}

// reject copies a poison entry to the dead letter stream with its failure
// classification. The original is acknowledged by the caller.
func (w *Worker) reject(ctx context.Context, msg redis.XMessage, reason string, cause error) {
	w.logger.Warn("dead-lettering poison message",
		"message_id", msg.ID,
		"reason", reason,
		"detail", cause.Error(),
	)

	err := w.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: DeadLetterStreamKey,
		MaxLen: dlqMaxLen,
		Approx: true,
		ID:     "*",
		Values: map[string]interface{}{
			"original_id":      msg.ID,
			"original_stream":  StreamKey,
			"reason":           reason,
			"detail":           cause.Error(),
			"payload":          msg.Values["payload"],
			"dead_lettered_at": time.Now().UTC().Format(time.RFC3339),
		},
	}).Err()
	if err != nil {
		w.logger.Error("failed to write to dead-letter queue",
			"message_id", msg.ID,
			"error", err,
		)
	}

	w.metrics.IncFeedEventProcessed("dead_lettered")
}

// gaugeQueueDepth publishes pending+lag for the group as the queue depth.
func (w *Worker) gaugeQueueDepth(ctx context.Context) {
	groups, err := w.redis.XInfoGroups(ctx, StreamKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		w.logger.Warn("failed to read stream group info", "error", err)
		return
	}
	for _, group := range groups {
		if group.Name == ConsumerGroup {
			w.metrics.SetFeedQueueDepth(group.Pending + group.Lag)
			return
		}
	}
}

// createGroup makes the consumer group, tolerating one that already exists.
func (w *Worker) createGroup(ctx context.Context) error {
	err := w.redis.XGroupCreateMkStream(ctx, StreamKey, ConsumerGroup, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

// decodeMessage turns one stream entry into an activity event. The stream
// entry ID doubles as the idempotency key. The reason classifies failures
// for the dead letter entry.
func decodeMessage(msg redis.XMessage) (*model.ActivityEvent, string, error) {
	raw, ok := msg.Values["payload"].(string)
	if !ok {
		return nil, "invalid_format", errors.New("payload field missing or not a string")
	}

	var payload CatchLoggedPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, "unmarshal_error", err
	}
	if err := ValidateCatchLoggedPayload(payload); err != nil {
		return nil, "validation_error", err
	}

	return &model.ActivityEvent{
		ID:           ulid.Make().String(),
		EventID:      msg.ID,
		CatchID:      payload.CatchID,
		AnglerID:     payload.AnglerID,
		SpeciesLabel: payload.SpeciesLabel,
		WeightKg:     payload.WeightKg,
		Venue:        payload.Venue,
		LoggedAt:     time.UnixMilli(payload.LoggedAt),
	}, "", nil
}
