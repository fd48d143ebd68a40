package handler

import (
	"fmt"
	"net/http"

	"github.com/penshort/userapi/internal/metrics"
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
//
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "userapi_users_created_total %d\n", snap.UsersCreated)
	writeMetric(w, "userapi_user_cache_hits_total %d\n", snap.UserCacheHits)
	writeMetric(w, "userapi_user_cache_misses_total %d\n", snap.UserCacheMisses)
	writeMetric(w, "userapi_store_duration_seconds_count %d\n", snap.StoreDurationCount)
	writeMetric(w, "userapi_store_duration_seconds_sum %.6f\n", float64(snap.StoreDurationTotalNs)/1e9)

	writeMetric(w, "userapi_api_errors_total{kind=\"not_found\"} %d\n", snap.NotFoundErrors)
	writeMetric(w, "userapi_api_errors_total{kind=\"validation\"} %d\n", snap.ValidationErrors)
	writeMetric(w, "userapi_api_errors_total{kind=\"database\"} %d\n", snap.DatabaseErrors)
	writeMetric(w, "userapi_api_errors_total{kind=\"internal\"} %d\n", snap.InternalErrors)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
