package notifications

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"foodorders/internal/core/ports"
)

// ErrQueueFull is returned by AsyncTransport when its buffer is full.
var ErrQueueFull = errors.New("notification queue is full")

// ErrTransportClosed is returned by AsyncTransport after Close.
var ErrTransportClosed = errors.New("notification transport is closed")

// LogTransport writes notifications to a structured log.
type LogTransport struct {
	logger *slog.Logger
}

func NewLogTransport(logger *slog.Logger) *LogTransport {
	return &LogTransport{logger: logger.With("component", "notifications.log")}
}

func (t *LogTransport) Deliver(ctx context.Context, n ports.Notification) error {
	t.logger.InfoContext(ctx, n.Title,
		slog.String("notification_id", n.ID.String()),
		slog.String("recipient", n.Recipient.String()),
		slog.String("order_id", n.OrderID.String()),
		slog.String("status", n.Status.String()),
		slog.String("body", n.Body))
	return nil
}

// FanOut delivers to every transport and joins their errors.
type FanOut []ports.NotificationTransport

func (f FanOut) Deliver(ctx context.Context, n ports.Notification) error {
	var errs []error
	for _, t := range f {
		if err := t.Deliver(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AsyncTransport queues notifications for a pool of workers so publishing an
// event never waits on slow delivery. When the queue is full the notification
// is dropped with ErrQueueFull.
type AsyncTransport struct {
	next   ports.NotificationTransport
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan ports.Notification
	wg     sync.WaitGroup
}

func NewAsyncTransport(next ports.NotificationTransport, size, workers int, logger *slog.Logger) *AsyncTransport {
	if size < 1 {
		size = 1
	}
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	t := &AsyncTransport{
		next:   next,
		logger: logger.With("component", "notifications.async"),
		queue:  make(chan ports.Notification, size),
	}
	t.wg.Add(workers)
	for range workers {
		go t.work()
	}
	return t
}

// Deliver enqueues n. The caller's context is not carried to the worker.
func (t *AsyncTransport) Deliver(_ context.Context, n ports.Notification) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.closed {
		return ErrTransportClosed
	}

	select {
	case t.queue <- n:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting notifications and waits for the queue to drain or
// ctx to end.
func (t *AsyncTransport) Close(ctx context.Context) error {
	t.mu.Lock()
	if !t.closed {
		t.closed = true
		close(t.queue)
	}
	t.mu.Unlock()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *AsyncTransport) work() {
	defer t.wg.Done()
	for n := range t.queue {
		if err := t.next.Deliver(context.Background(), n); err != nil {
			t.logger.Warn("notification not delivered",
				slog.String("recipient", n.Recipient.String()),
				slog.String("order_id", n.OrderID.String()),
				slog.Any("error", err))
		}
	}
}
