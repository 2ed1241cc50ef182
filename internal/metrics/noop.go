package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncReportCacheHit is a no-op.
func (n *NoopRecorder) IncReportCacheHit() {}

// IncReportCacheMiss is a no-op.
func (n *NoopRecorder) IncReportCacheMiss() {}

// ObserveReportDuration is a no-op.
func (n *NoopRecorder) ObserveReportDuration(duration time.Duration) {}

// IncCatchCreated is a no-op.
func (n *NoopRecorder) IncCatchCreated() {}

// IncCatchUpdated is a no-op.
func (n *NoopRecorder) IncCatchUpdated() {}

// IncCatchDeleted is a no-op.
func (n *NoopRecorder) IncCatchDeleted() {}

// IncOutingCreated is a no-op.
func (n *NoopRecorder) IncOutingCreated() {}

// IncFeedEventPublished is a no-op.
func (n *NoopRecorder) IncFeedEventPublished(status string) {}

// IncFeedEventProcessed is a no-op.
func (n *NoopRecorder) IncFeedEventProcessed(status string) {}

// ObserveFeedBatchSize is a no-op.
func (n *NoopRecorder) ObserveFeedBatchSize(size int) {}

// ObserveFeedBatchDuration is a no-op.
func (n *NoopRecorder) ObserveFeedBatchDuration(duration time.Duration) {}

// SetFeedQueueDepth is a no-op.
func (n *NoopRecorder) SetFeedQueueDepth(depth int64) {}

// ObserveFeedIngestLag is a no-op.
func (n *NoopRecorder) ObserveFeedIngestLag(lag time.Duration) {}
