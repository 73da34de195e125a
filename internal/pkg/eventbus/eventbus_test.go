package eventbus_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"foodorders/internal/pkg/eventbus"
)

type pinged struct{ n int }

func (pinged) EventName() string { return "test:pinged" }

type ponged struct{}

func (ponged) EventName() string { return "test:ponged" }

func TestBus_PublishCallsHandlersInSubscriptionOrder(t *testing.T) {
	bus := eventbus.New()
	var calls []string
	var seen []eventbus.Event

	for _, name := range []string{"first", "second", "third"} {
		bus.Subscribe("test:pinged", func(_ context.Context, e eventbus.Event) error {
			calls = append(calls, name)
			seen = append(seen, e)
			return nil
		})
	}
	bus.Subscribe("test:ponged", func(context.Context, eventbus.Event) error {
		calls = append(calls, "other")
		return nil
	})

	event := pinged{n: 7}
	bus.Publish(t.Context(), event)

	assert.Equal(t, []string{"first", "second", "third"}, calls)
	for _, e := range seen {
		assert.Equal(t, event, e)
	}
}

func TestBus_FailingHandlersAreIsolated(t *testing.T) {
	var logs bytes.Buffer
	bus := eventbus.New(eventbus.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	reached := false

	bus.Subscribe("test:pinged", func(context.Context, eventbus.Event) error {
		return errors.New("boom")
	})
	bus.Subscribe("test:pinged", func(context.Context, eventbus.Event) error {
		panic("kaboom")
	})
	bus.Subscribe("test:pinged", func(context.Context, eventbus.Event) error {
		reached = true
		return nil
	})

	require.NotPanics(t, func() {
		bus.Publish(t.Context(), pinged{})
	})

	assert.True(t, reached)
	assert.Contains(t, logs.String(), "event handler failed")
	assert.Contains(t, logs.String(), "boom")
	assert.Contains(t, logs.String(), "kaboom")
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := eventbus.New()
	count := 0
	sub := bus.Subscribe("test:pinged", func(context.Context, eventbus.Event) error {
		count++
		return nil
	})

	bus.Publish(t.Context(), pinged{})
	bus.Unsubscribe(sub)
	require.NotPanics(t, func() {
		bus.Unsubscribe(sub)
		bus.Unsubscribe(eventbus.Subscription{})
	})
	bus.Publish(t.Context(), pinged{})

	assert.Equal(t, 1, count)
	assert.Zero(t, bus.HandlerCount("test:pinged"))
}

func TestBus_UnsubscribeKeepsOtherHandlers(t *testing.T) {
	bus := eventbus.New()
	var calls []int
	subs := make([]eventbus.Subscription, 3)
	for i := range subs {
		subs[i] = bus.Subscribe("test:pinged", func(context.Context, eventbus.Event) error {
			calls = append(calls, i)
			return nil
		})
	}

	bus.Unsubscribe(subs[1])
	bus.Publish(t.Context(), pinged{})

	assert.Equal(t, []int{0, 2}, calls)
	assert.Equal(t, "test:pinged", subs[1].EventName())
}

func TestBus_SubscriptionChangesDuringPublishApplyNextTime(t *testing.T) {
	bus := eventbus.New()
	late := 0
	var self eventbus.Subscription

	self = bus.Subscribe("test:pinged", func(context.Context, eventbus.Event) error {
		bus.Unsubscribe(self)
		bus.Subscribe("test:pinged", func(context.Context, eventbus.Event) error {
			late++
			return nil
		})
		return nil
	})

	bus.Publish(t.Context(), pinged{})
	assert.Zero(t, late)

	bus.Publish(t.Context(), pinged{})
	assert.Equal(t, 1, late)
}

func TestTyped(t *testing.T) {
	bus := eventbus.New()
	var got pinged
	handler := eventbus.Typed(func(_ context.Context, e pinged) error {
		got = e
		return nil
	})
	bus.Subscribe("test:pinged", handler)

	bus.Publish(t.Context(), pinged{n: 3})

	assert.Equal(t, 3, got.n)
	require.ErrorIs(t, handler(t.Context(), ponged{}), eventbus.ErrUnexpectedEvent)
}

func TestBus_Telemetry(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	bus := eventbus.New(
		eventbus.WithTracer(tp.Tracer("test")),
		eventbus.WithMeter(mp.Meter("test")),
	)
	bus.Subscribe("test:pinged", func(context.Context, eventbus.Event) error {
		return errors.New("boom")
	})

	bus.Publish(t.Context(), pinged{})
	bus.Publish(t.Context(), pinged{})

	ended := spans.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "EventBus.Publish", ended[0].Name())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))
	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[m.Name] += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(2), totals["eventbus.events_published"])
	assert.Equal(t, int64(2), totals["eventbus.handler_failures"])
}
