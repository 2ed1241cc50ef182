package handler

import (
	"fmt"
	"net/http"

	"github.com/creel/creel/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "creel_report_cache_hits_total %d\n", snap.ReportCacheHits)
	writeMetric(w, "creel_report_cache_misses_total %d\n", snap.ReportCacheMisses)
	writeMetric(w, "creel_report_duration_seconds_count %d\n", snap.ReportDurationCount)
	writeMetric(w, "creel_report_duration_seconds_sum %.6f\n", float64(snap.ReportDurationTotalNs)/1e9)

	writeMetric(w, "creel_catches_created_total %d\n", snap.CatchesCreated)
	writeMetric(w, "creel_catches_updated_total %d\n", snap.CatchesUpdated)
	writeMetric(w, "creel_catches_deleted_total %d\n", snap.CatchesDeleted)
	writeMetric(w, "creel_outings_created_total %d\n", snap.OutingsCreated)

	writeMetric(w, "creel_feed_events_published_total{status=\"success\"} %d\n", snap.FeedPublished)
	writeMetric(w, "creel_feed_events_published_total{status=\"dropped\"} %d\n", snap.FeedDropped)

	writeMetric(w, "creel_feed_events_processed_total{status=\"success\"} %d\n", snap.FeedProcessed)
	writeMetric(w, "creel_feed_events_processed_total{status=\"failed\"} %d\n", snap.FeedFailed)
	writeMetric(w, "creel_feed_events_processed_total{status=\"dead_lettered\"} %d\n", snap.FeedDeadLettered)

	writeMetric(w, "creel_feed_batches_total %d\n", snap.FeedBatchCount)
	writeMetric(w, "creel_feed_queue_depth %d\n", snap.FeedQueueDepth)
	writeMetric(w, "creel_feed_batch_duration_seconds_sum %.6f\n", float64(snap.FeedBatchDurationNs)/1e9)
	writeMetric(w, "creel_feed_ingest_lag_seconds_count %d\n", snap.FeedIngestLagCount)
	writeMetric(w, "creel_feed_ingest_lag_seconds_sum %.6f\n", float64(snap.FeedIngestLagTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
