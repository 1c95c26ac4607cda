package mocks

import (
	"context"
	"dinebook/infras/otel"
	"net/http"
	"sync"
)

// Metrics counts calls in memory so tests can assert on them.
type Metrics struct {
	mu       sync.Mutex
	Created  int
	Rejected map[string]int
	Events   map[string]int
}

func NewMetrics() *Metrics {
	return &Metrics{
		Rejected: map[string]int{},
		Events:   map[string]int{},
	}
}

var _ otel.Metrics = (*Metrics)(nil)

// ReservationCreated implements otel.Metrics.
func (m *Metrics) ReservationCreated(_ context.Context, _ bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Created++
}

// BookingRejected implements otel.Metrics.
func (m *Metrics) BookingRejected(_ context.Context, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Rejected[kind]++
}

// EventPublished implements otel.Metrics.
func (m *Metrics) EventPublished(_ context.Context, event string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Events[event]++
}

// Handler implements otel.Metrics.
func (m *Metrics) Handler() http.Handler {
	return http.NotFoundHandler()
}

// Snapshot returns copies of the counters.
func (m *Metrics) Snapshot() (int, map[string]int, map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rejected := make(map[string]int, len(m.Rejected))
	for k, v := range m.Rejected {
		rejected[k] = v
	}

	events := make(map[string]int, len(m.Events))
	for k, v := range m.Events {
		events[k] = v
	}

	return m.Created, rejected, events
}
