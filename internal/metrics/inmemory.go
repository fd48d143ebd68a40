package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersCreated         uint64
	UserCacheHits        uint64
	UserCacheMisses      uint64
	StoreDurationCount   uint64
	StoreDurationTotalNs int64
	NotFoundErrors       uint64
	ValidationErrors     uint64
	DatabaseErrors       uint64
	InternalErrors       uint64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	usersCreated         uint64
	userCacheHits        uint64
	userCacheMisses      uint64
	storeDurationCount   uint64
	storeDurationTotalNs int64
	notFoundErrors       uint64
	validationErrors     uint64
	databaseErrors       uint64
	internalErrors       uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersCreated:         atomic.LoadUint64(&m.usersCreated),
		UserCacheHits:        atomic.LoadUint64(&m.userCacheHits),
		UserCacheMisses:      atomic.LoadUint64(&m.userCacheMisses),
		StoreDurationCount:   atomic.LoadUint64(&m.storeDurationCount),
		StoreDurationTotalNs: atomic.LoadInt64(&m.storeDurationTotalNs),
		NotFoundErrors:       atomic.LoadUint64(&m.notFoundErrors),
		ValidationErrors:     atomic.LoadUint64(&m.validationErrors),
		DatabaseErrors:       atomic.LoadUint64(&m.databaseErrors),
		InternalErrors:       atomic.LoadUint64(&m.internalErrors),
	}
}

// IncUserCreated increments user created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncUserCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncUserCacheHit() {
	atomic.AddUint64(&m.userCacheHits, 1)
}

// IncUserCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncUserCacheMiss() {
	atomic.AddUint64(&m.userCacheMisses, 1)
}

// ObserveStoreDuration records how long a store call took.
func (m *InMemoryRecorder) ObserveStoreDuration(duration time.Duration) {
	atomic.AddUint64(&m.storeDurationCount, 1)
	atomic.AddInt64(&m.storeDurationTotalNs, duration.Nanoseconds())
}

// IncAPIError increments the counter for the given error kind.
// Unknown kinds count as internal.
func (m *InMemoryRecorder) IncAPIError(kind string) {
	switch kind {
	case "not_found":
		atomic.AddUint64(&m.notFoundErrors, 1)
	case "validation":
		atomic.AddUint64(&m.validationErrors, 1)
	case "database":
		atomic.AddUint64(&m.databaseErrors, 1)
	default:
		atomic.AddUint64(&m.internalErrors, 1)
	}
}
