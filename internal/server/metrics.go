package server

import (
	"sync/atomic"
	"time"
)

// Metrics tracks server statistics using atomic operations for thread-safety
type Metrics struct {
	Requests     atomic.Int64
	Loads        atomic.Int64
	Writes       atomic.Int64
	FailedWrites atomic.Int64
	Unauthorized atomic.Int64
	StartTime    time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// MetricsSnapshot is a point-in-time copy of the counters
type MetricsSnapshot struct {
	Requests     int64     `json:"requests"`
	Loads        int64     `json:"loads"`
	Writes       int64     `json:"writes"`
	FailedWrites int64     `json:"failed_writes"`
	Unauthorized int64     `json:"unauthorized"`
	StartTime    time.Time `json:"start_time"`
	Uptime       string    `json:"uptime"`
}

// Snapshot returns the current counters
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Requests:     m.Requests.Load(),
		Loads:        m.Loads.Load(),
		Writes:       m.Writes.Load(),
		FailedWrites: m.FailedWrites.Load(),
		Unauthorized: m.Unauthorized.Load(),
		StartTime:    m.StartTime,
		Uptime:       time.Since(m.StartTime).Round(time.Second).String(),
	}
}
