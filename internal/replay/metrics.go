package replay

import (
	"sync/atomic"
	"time"
)

// Metrics counts replay outcomes. All methods are safe for concurrent use.
type Metrics struct {
	started      atomic.Uint64
	completed    atomic.Uint64
	failed       atomic.Uint64
	cancelled    atomic.Uint64
	rejectedBusy atomic.Uint64
	unavailable  atomic.Uint64

	lastDuration atomic.Int64
	peakDuration atomic.Int64
}

// NewMetrics creates zeroed metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Started      uint64
	Completed    uint64
	Failed       uint64
	Cancelled    uint64
	RejectedBusy uint64
	Unavailable  uint64
	LastDuration time.Duration
	PeakDuration time.Duration
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Started:      m.started.Load(),
		Completed:    m.completed.Load(),
		Failed:       m.failed.Load(),
		Cancelled:    m.cancelled.Load(),
		RejectedBusy: m.rejectedBusy.Load(),
		Unavailable:  m.unavailable.Load(),
		LastDuration: time.Duration(m.lastDuration.Load()),
		PeakDuration: time.Duration(m.peakDuration.Load()),
	}
}

func (m *Metrics) recordDuration(d time.Duration) {
	ns := d.Nanoseconds()
	m.lastDuration.Store(ns)
	for {
		peak := m.peakDuration.Load()
		if ns <= peak || m.peakDuration.CompareAndSwap(peak, ns) {
			return
		}
	}
}
