// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// User metrics
	IncUserCreated()
	IncUserCacheHit()
	IncUserCacheMiss()
	ObserveStoreDuration(duration time.Duration)

	// Error metrics, kind is one of the apierror kinds
	IncAPIError(kind string)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
