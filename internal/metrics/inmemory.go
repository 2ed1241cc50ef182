package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	ReportCacheHits       uint64
	ReportCacheMisses     uint64
	ReportDurationCount   uint64
	ReportDurationTotalNs int64
	CatchesCreated        uint64
	CatchesUpdated        uint64
	CatchesDeleted        uint64
	OutingsCreated        uint64
	FeedPublished         uint64
	FeedDropped           uint64
	FeedProcessed         uint64
	FeedFailed            uint64
	FeedDeadLettered      uint64
	FeedQueueDepth        int64
	FeedBatchCount        uint64
	FeedBatchDurationNs   int64
	FeedIngestLagCount    uint64
	FeedIngestLagTotalNs  int64
}

// InMemoryRecorder stores metrics in memory for tests and the metrics
// snapshot endpoint.
type InMemoryRecorder struct {
	reportCacheHits       uint64
	reportCacheMisses     uint64
	reportDurationCount   uint64
	reportDurationTotalNs int64
	catchesCreated        uint64
	catchesUpdated        uint64
	catchesDeleted        uint64
	outingsCreated        uint64
	feedPublished         uint64
	feedDropped           uint64
	feedProcessed         uint64
	feedFailed            uint64
	feedDeadLettered      uint64
	feedQueueDepth        int64
	feedBatchCount        uint64
	feedBatchDurationNs   int64
	feedIngestLagCount    uint64
	feedIngestLagTotalNs  int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		ReportCacheHits:       atomic.LoadUint64(&m.reportCacheHits),
		ReportCacheMisses:     atomic.LoadUint64(&m.reportCacheMisses),
		ReportDurationCount:   atomic.LoadUint64(&m.reportDurationCount),
		ReportDurationTotalNs: atomic.LoadInt64(&m.reportDurationTotalNs),
		CatchesCreated:        atomic.LoadUint64(&m.catchesCreated),
		CatchesUpdated:        atomic.LoadUint64(&m.catchesUpdated),
		CatchesDeleted:        atomic.LoadUint64(&m.catchesDeleted),
		OutingsCreated:        atomic.LoadUint64(&m.outingsCreated),
		FeedPublished:         atomic.LoadUint64(&m.feedPublished),
		FeedDropped:           atomic.LoadUint64(&m.feedDropped),
		FeedProcessed:         atomic.LoadUint64(&m.feedProcessed),
		FeedFailed:            atomic.LoadUint64(&m.feedFailed),
		FeedDeadLettered:      atomic.LoadUint64(&m.feedDeadLettered),
		FeedQueueDepth:        atomic.LoadInt64(&m.feedQueueDepth),
		FeedBatchCount:        atomic.LoadUint64(&m.feedBatchCount),
		FeedBatchDurationNs:   atomic.LoadInt64(&m.feedBatchDurationNs),
		FeedIngestLagCount:    atomic.LoadUint64(&m.feedIngestLagCount),
		FeedIngestLagTotalNs:  atomic.LoadInt64(&m.feedIngestLagTotalNs),
	}
}

// IncReportCacheHit increments the report cache hit counter.
func (m *InMemoryRecorder) IncReportCacheHit() {
	atomic.AddUint64(&m.reportCacheHits, 1)
}

// IncReportCacheMiss increments the report cache miss counter.
func (m *InMemoryRecorder) IncReportCacheMiss() {
	atomic.AddUint64(&m.reportCacheMisses, 1)
}

// ObserveReportDuration records a report computation duration.
func (m *InMemoryRecorder) ObserveReportDuration(duration time.Duration) {
	atomic.AddUint64(&m.reportDurationCount, 1)
	atomic.AddInt64(&m.reportDurationTotalNs, duration.Nanoseconds())
}

// IncCatchCreated increments the catch created counter.
func (m *InMemoryRecorder) IncCatchCreated() {
	atomic.AddUint64(&m.catchesCreated, 1)
}

// IncCatchUpdated increments the catch updated counter.
func (m *InMemoryRecorder) IncCatchUpdated() {
	atomic.AddUint64(&m.catchesUpdated, 1)
}

// IncCatchDeleted increments the catch deleted counter.
func (m *InMemoryRecorder) IncCatchDeleted() {
	atomic.AddUint64(&m.catchesDeleted, 1)
}

// IncOutingCreated increments the outing created counter.
func (m *InMemoryRecorder) IncOutingCreated() {
	atomic.AddUint64(&m.outingsCreated, 1)
}

// IncFeedEventPublished increments the publish counter for a status.
func (m *InMemoryRecorder) IncFeedEventPublished(status string) {
	if status == "success" {
		atomic.AddUint64(&m.feedPublished, 1)
		return
	}
	atomic.AddUint64(&m.feedDropped, 1)
}

// IncFeedEventProcessed increments the processed counter for a status.
func (m *InMemoryRecorder) IncFeedEventProcessed(status string) {
	switch status {
	case "success":
		atomic.AddUint64(&m.feedProcessed, 1)
	case "dead_lettered":
		atomic.AddUint64(&m.feedDeadLettered, 1)
	default:
		atomic.AddUint64(&m.feedFailed, 1)
	}
}

// ObserveFeedBatchSize counts a processed batch.
func (m *InMemoryRecorder) ObserveFeedBatchSize(size int) {
	atomic.AddUint64(&m.feedBatchCount, 1)
}

// ObserveFeedBatchDuration accumulates batch processing time.
func (m *InMemoryRecorder) ObserveFeedBatchDuration(duration time.Duration) {
	atomic.AddInt64(&m.feedBatchDurationNs, duration.Nanoseconds())
}

// SetFeedQueueDepth stores the current queue depth gauge.
func (m *InMemoryRecorder) SetFeedQueueDepth(depth int64) {
	atomic.StoreInt64(&m.feedQueueDepth, depth)
}

// ObserveFeedIngestLag accumulates publish-to-persist lag.
func (m *InMemoryRecorder) ObserveFeedIngestLag(lag time.Duration) {
	atomic.AddUint64(&m.feedIngestLagCount, 1)
	atomic.AddInt64(&m.feedIngestLagTotalNs, lag.Nanoseconds())
}
