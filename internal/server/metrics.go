package server

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/manav03panchal/chronos/internal/errors"
)

// Metrics tracks request counters for the running server.
type Metrics struct {
	requests atomic.Int64
	failures atomic.Int64
	denials  atomic.Int64

	mu            sync.RWMutex
	lastLatencyMs int64
	lastRequestAt time.Time
	lastError     string
	lastErrorAt   time.Time
	byCategory    map[string]int64
}

// NewMetrics creates an empty metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{byCategory: make(map[string]int64)}
}

// MetricsSnapshot is a point-in-time view of Metrics.
type MetricsSnapshot struct {
	RequestsTotal    int64            `json:"requests_total"`
	FailuresTotal    int64            `json:"failures_total"`
	DenialsTotal     int64            `json:"denials_total"`
	LastLatencyMs    int64            `json:"last_latency_ms"`
	LastRequestAt    *time.Time       `json:"last_request_at,omitempty"`
	LastError        string           `json:"last_error,omitempty"`
	LastErrorAt      *time.Time       `json:"last_error_at,omitempty"`
	ErrorsByCategory map[string]int64 `json:"errors_by_category,omitempty"`
}

// Snapshot returns a copy of the current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := MetricsSnapshot{
		RequestsTotal:    m.requests.Load(),
		FailuresTotal:    m.failures.Load(),
		DenialsTotal:     m.denials.Load(),
		LastLatencyMs:    m.lastLatencyMs,
		LastError:        m.lastError,
		ErrorsByCategory: make(map[string]int64, len(m.byCategory)),
	}
	if !m.lastRequestAt.IsZero() {
		t := m.lastRequestAt
		snap.LastRequestAt = &t
	}
	if !m.lastErrorAt.IsZero() {
		t := m.lastErrorAt
		snap.LastErrorAt = &t
	}
	for k, v := range m.byCategory {
		snap.ErrorsByCategory[k] = v
	}
	return snap
}

// RecordRequest counts one served request.
func (m *Metrics) RecordRequest(latency time.Duration) {
	m.requests.Add(1)

	m.mu.Lock()
	m.lastLatencyMs = latency.Milliseconds()
	m.lastRequestAt = time.Now()
	m.mu.Unlock()
}

// RecordError counts a failed request by error category.
func (m *Metrics) RecordError(err error) {
	m.failures.Add(1)
	if errors.IsDenial(err) {
		m.denials.Add(1)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastError = err.Error()
	m.lastErrorAt = time.Now()
	m.byCategory[errors.Classify(err).String()]++
}
