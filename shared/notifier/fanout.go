package notifier

import (
	"context"
	"dinebook/infras/otel"
	"dinebook/shared/constant"
	"dinebook/shared/timezone"
	"sync"

	"github.com/rs/zerolog/log"
)

// Fanout hands each message to every sink on its own goroutine.
type Fanout struct {
	sinks   []Sink
	otel    otel.Otel
	metrics otel.Metrics

	// mu orders wg.Add against Wait; closed is set once Wait begins.
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewFanout(ot otel.Otel, metrics otel.Metrics, sinks ...Sink) *Fanout {
	active := make([]Sink, 0, len(sinks))

	for _, sink := range sinks {
		if sink != nil {
			active = append(active, sink)
		}
	}

	names := make([]string, 0, len(active))
	for _, sink := range active {
		names = append(names, sink.Name())
	}

	log.Info().Strs("sinks", names).Msg("notifier initialized")

	return &Fanout{
		sinks:   active,
		otel:    ot,
		metrics: metrics,
	}
}

// Publish returns immediately. The caller's cancellation does not abort
// delivery, since the change it describes is already committed. Events
// published after Wait has started are dropped.
func (f *Fanout) Publish(ctx context.Context, event Event, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		log.Warn().Str("event", string(event)).Msg("notifier is shutting down, event dropped")

		return
	}

	msg := Message{
		Event:   event,
		Payload: payload,
		At:      timezone.Now(),
	}

	f.metrics.EventPublished(ctx, string(event))

	detached := context.WithoutCancel(ctx)

	for _, sink := range f.sinks {
		f.wg.Add(1)

		go func(sink Sink) {
			defer f.wg.Done()

			f.deliver(detached, sink, msg)
		}(sink)
	}
}

func (f *Fanout) deliver(ctx context.Context, sink Sink, msg Message) {
	ctx, scope := f.otel.NewScope(ctx, constant.OtelNotifierScopeName, constant.OtelNotifierScopeName+"."+sink.Name())
	defer scope.End()

	scope.SetAttribute("notifier.event", string(msg.Event))

	defer func() {
		if recovered := recover(); recovered != nil {
			log.Error().Interface("panic", recovered).Str("sink", sink.Name()).Str("event", string(msg.Event)).Msg("notifier sink panicked")
		}
	}()

	if err := sink.Deliver(ctx, msg); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("sink", sink.Name()).Str("event", string(msg.Event)).Msg("failed to deliver event")
	}
}

// Wait stops accepting events and blocks until in-flight deliveries finish
// or ctx ends.
func (f *Fanout) Wait(ctx context.Context) {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()

	done := make(chan struct{})

	go func() {
		f.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn().Msg("notifier deliveries still in flight at shutdown")
	}
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event, any) {}
