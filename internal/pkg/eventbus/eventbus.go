// Package eventbus is an in-process publish/subscribe channel.
//
// Handlers run synchronously on the publishing goroutine, in subscription
// order, and all receive the same event value. A handler that returns an error
// or panics is logged and skipped; the publisher never sees the failure and
// the remaining handlers still run. Handlers that do slow I/O should hand the
// work off to their own goroutine or queue.
//
// Example:
//
//	bus := eventbus.New(eventbus.WithLogger(logger))
//	sub := bus.Subscribe("order:created", eventbus.Typed(func(ctx context.Context, e order.Created) error {
//	    return notify(ctx, e.Order)
//	}))
//	defer bus.Unsubscribe(sub)
//
//	bus.Publish(ctx, order.NewCreated(o))
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "foodorders/internal/pkg/eventbus"

// ErrUnexpectedEvent is returned by Typed handlers given an event of another type.
var ErrUnexpectedEvent = errors.New("unexpected event type")

// Event is anything that can name itself.
type Event interface {
	EventName() string
}

type Handler func(ctx context.Context, event Event) error

// Typed adapts a handler for one concrete event type.
func Typed[E Event](fn func(ctx context.Context, event E) error) Handler {
	return func(ctx context.Context, event Event) error {
		e, ok := event.(E)
		if !ok {
			return fmt.Errorf("%w: %T", ErrUnexpectedEvent, event)
		}
		return fn(ctx, e)
	}
}

// Subscription identifies one registered handler. The zero value is valid and
// unsubscribes nothing.
type Subscription struct {
	name string
	id   uint64
}

func (s Subscription) EventName() string {
	return s.name
}

type entry struct {
	id      uint64
	handler Handler
}

type Bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[string][]entry

	logger  *slog.Logger
	tracer  trace.Tracer
	metrics busMetrics
}

type Option func(*Bus)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		b.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(b *Bus) {
		b.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(b *Bus) {
		b.metrics = newBusMetrics(m)
	}
}

func New(opts ...Option) *Bus {
	b := &Bus{
		handlers: make(map[string][]entry),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:   nooptrace.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if b.tracer == nil {
		b.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if b.logger == nil {
		b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	b.logger = b.logger.With("component", "eventbus")
	return b
}

// Subscribe registers handler for events named name. Handlers registered
// during a Publish take effect from the next Publish.
func (b *Bus) Subscribe(name string, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[name] = append(b.handlers[name], entry{id: b.nextID, handler: handler})
	return Subscription{name: name, id: b.nextID}
}

// Unsubscribe removes the handler. Unknown or already removed subscriptions
// are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.handlers[sub.name]
	for i, e := range entries {
		if e.id != sub.id {
			continue
		}
		rest := make([]entry, 0, len(entries)-1)
		rest = append(rest, entries[:i]...)
		rest = append(rest, entries[i+1:]...)
		if len(rest) == 0 {
			delete(b.handlers, sub.name)
		} else {
			b.handlers[sub.name] = rest
		}
		return
	}
}

// HandlerCount reports how many handlers are subscribed to name.
func (b *Bus) HandlerCount(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[name])
}

// Publish calls every handler subscribed to the event's name at the moment of
// the call.
func (b *Bus) Publish(ctx context.Context, event Event) {
	name := event.EventName()

	b.mu.RLock()
	snapshot := b.handlers[name]
	b.mu.RUnlock()

	ctx, span := b.tracer.Start(ctx, "EventBus.Publish",
		trace.WithAttributes(
			attribute.String("event.name", name),
			attribute.Int("event.handlers", len(snapshot)),
		))
	defer span.End()

	b.metrics.recordPublished(ctx, name)

	failed := 0
	for _, e := range snapshot {
		if err := b.invoke(ctx, e.handler, event); err != nil {
			failed++
			span.RecordError(err)
			b.metrics.recordFailure(ctx, name)
			b.logger.ErrorContext(ctx, "event handler failed",
				slog.String("event", name),
				slog.Uint64("subscription", e.id),
				slog.String("error", err.Error()))
		}
	}

	if failed > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d handler(s) failed", failed))
	}
}

func (b *Bus) invoke(ctx context.Context, h Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h(ctx, event)
}

type busMetrics struct {
	published metric.Int64Counter
	failures  metric.Int64Counter
}

func newBusMetrics(m metric.Meter) busMetrics {
	if m == nil {
		return busMetrics{}
	}
	published, _ := m.Int64Counter("eventbus.events_published", metric.WithDescription("Number of events published"))
	failures, _ := m.Int64Counter("eventbus.handler_failures", metric.WithDescription("Number of failed event handler calls"))
	return busMetrics{published: published, failures: failures}
}

func (m busMetrics) recordPublished(ctx context.Context, name string) {
	if m.published != nil {
		m.published.Add(ctx, 1, metric.WithAttributes(attribute.String("event.name", name)))
	}
}

func (m busMetrics) recordFailure(ctx context.Context, name string) {
	if m.failures != nil {
		m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("event.name", name)))
	}
}
