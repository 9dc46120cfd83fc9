package observability

import (
	"strconv"
	"sync"
	"time"
)

// RouteStats aggregates what the portal observed for one route/method/status
// combination.
type RouteStats struct {
	Count         int64
	TotalDuration time.Duration
}

// Metrics keeps in-memory request and error counters. All methods are safe on
// a nil receiver so callers can disable metrics by passing nil.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]RouteStats
	errors   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]RouteStats),
		errors:   make(map[string]int64),
	}
}

// RecordRequest accumulates count and latency for a completed request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.requests[key]
	stats.Count++
	stats.TotalDuration += duration
	m.requests[key] = stats
}

// RecordError increments the counter for a domain error code on a route.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[path+"|"+method+"|"+code]++
}

// RequestSnapshot returns a copy of the request counters keyed by
// "path|method|status".
func (m *Metrics) RequestSnapshot() map[string]RouteStats {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]RouteStats, len(m.requests))
	for k, v := range m.requests {
		out[k] = v
	}
	return out
}

// ErrorSnapshot returns a copy of the error counters keyed by
// "path|method|code".
func (m *Metrics) ErrorSnapshot() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.errors))
	for k, v := range m.errors {
		out[k] = v
	}
	return out
}
