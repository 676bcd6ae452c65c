package observability

import "sync"

// Metrics provides basic in-memory counters for processed updates.
type Metrics struct {
	mu          sync.Mutex
	updateCount map[string]int64
	errorCount  map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		updateCount: make(map[string]int64),
		errorCount:  make(map[string]int64),
	}
}

// RecordUpdate increments the counter for a handled endpoint, e.g. "/start".
func (m *Metrics) RecordUpdate(endpoint string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCount[endpoint]++
}

// RecordError increments the error counter for an endpoint.
func (m *Metrics) RecordError(endpoint string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[endpoint]++
}

// Snapshot returns copies of the current counters.
func (m *Metrics) Snapshot() (updates, errors map[string]int64) {
	updates = make(map[string]int64)
	errors = make(map[string]int64)
	if m == nil {
		return updates, errors
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.updateCount {
		updates[k] = v
	}
	for k, v := range m.errorCount {
		errors[k] = v
	}
	return updates, errors
}
