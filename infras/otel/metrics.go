package otel

import (
	"context"
	"dinebook/config"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "dinebook"

// Metrics records the booking counters exported at /metrics.
type Metrics interface {
	ReservationCreated(ctx context.Context, walkIn bool)
	BookingRejected(ctx context.Context, kind string)
	EventPublished(ctx context.Context, event string)
	Handler() http.Handler
}

type metricsImpl struct {
	registry *prometheus.Registry
	created  metric.Int64Counter
	rejected metric.Int64Counter
	events   metric.Int64Counter
}

// NewMetrics wires an OpenTelemetry meter to a dedicated Prometheus registry.
// When metrics are disabled, or the exporter fails, counters are no-ops.
func NewMetrics(cfg *config.Config) Metrics {
	registry := prometheus.NewRegistry()

	var meter metric.Meter = noop.NewMeterProvider().Meter(meterName)

	if cfg.Metrics.Enable {
		exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
		if err != nil {
			log.Error().Err(err).Msg("failed to create prometheus exporter, metrics disabled")
		} else {
			meter = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)).Meter(meterName)
		}
	}

	m := &metricsImpl{registry: registry}

	var err error

	m.created, err = meter.Int64Counter("reservations_created",
		metric.WithDescription("Reservations persisted by the booking orchestrator"))
	if err != nil {
		log.Error().Err(err).Msg("failed to create reservations_created counter")
	}

	m.rejected, err = meter.Int64Counter("booking_rejections",
		metric.WithDescription("Booking attempts rejected, by failure kind"))
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking_rejections counter")
	}

	m.events, err = meter.Int64Counter("notifier_events",
		metric.WithDescription("Lifecycle events handed to the notifier"))
	if err != nil {
		log.Error().Err(err).Msg("failed to create notifier_events counter")
	}

	return m
}

func (m *metricsImpl) ReservationCreated(ctx context.Context, walkIn bool) {
	if m.created == nil {
		return
	}

	m.created.Add(ctx, 1, metric.WithAttributes(attribute.Bool("walk_in", walkIn)))
}

func (m *metricsImpl) BookingRejected(ctx context.Context, kind string) {
	if m.rejected == nil {
		return
	}

	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *metricsImpl) EventPublished(ctx context.Context, event string) {
	if m.events == nil {
		return
	}

	m.events.Add(ctx, 1, metric.WithAttributes(attribute.String("event", event)))
}

func (m *metricsImpl) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
