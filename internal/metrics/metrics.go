// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Stats report metrics
	IncReportCacheHit()
	IncReportCacheMiss()
	ObserveReportDuration(duration time.Duration)

	// Record management metrics
	IncCatchCreated()
	IncCatchUpdated()
	IncCatchDeleted()
	IncOutingCreated()

	// Feed pipeline metrics
	IncFeedEventPublished(status string) // status: "success" or "dropped"
	IncFeedEventProcessed(status string) // status: "success", "failed", "dead_lettered"
	ObserveFeedBatchSize(size int)
	ObserveFeedBatchDuration(duration time.Duration)
	SetFeedQueueDepth(depth int64)
	ObserveFeedIngestLag(lag time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
