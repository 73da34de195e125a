// Package notifications turns order events into human-readable messages for
// the roles that care about them and hands those messages to a transport.
package notifications

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"
	"foodorders/internal/pkg/eventbus"
)

type message struct {
	role  kernel.Role
	title string
	body  string
}

// statusMessages is the single table of who hears about which status.
var statusMessages = map[order.Status][]message{
	order.Preparing: {
		{kernel.RoleCustomer, "Order is being prepared", "Your order #%s is being prepared."},
		{kernel.RoleDelivery, "Order ready for pickup", "Order #%s is being prepared and will be ready for pickup."},
	},
	order.OnTheWay: {
		{kernel.RoleCustomer, "Order is on the way", "Your order #%s is on the way!"},
	},
	order.Delivered: {
		{kernel.RoleCustomer, "Order delivered", "Your order #%s has been delivered. Enjoy!"},
	},
	order.Cancelled: {
		{kernel.RoleCustomer, "Order cancelled", "Your order #%s has been cancelled."},
		{kernel.RoleBusiness, "Order cancelled", "Order #%s has been cancelled."},
	},
}

var createdMessages = []message{
	{kernel.RoleBusiness, "New order", "Order #%s is waiting to be accepted."},
}

type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// Dispatcher subscribes to order events and notifies every target role except
// the one that caused the event.
type Dispatcher struct {
	transport ports.NotificationTransport
	logger    *slog.Logger
	now       func() time.Time
}

func NewDispatcher(transport ports.NotificationTransport, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		transport: transport,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "notifications")
	return d
}

// Subscribe registers the dispatcher for both order events.
func (d *Dispatcher) Subscribe(bus ports.EventSubscriber) []eventbus.Subscription {
	return []eventbus.Subscription{
		bus.Subscribe(order.EventCreated, eventbus.Typed(d.OnCreated)),
		bus.Subscribe(order.EventStatusChanged, eventbus.Typed(d.OnStatusChanged)),
	}
}

// OnCreated notifies the business. Orders are always placed by customers, so
// customer targets are suppressed.
func (d *Dispatcher) OnCreated(ctx context.Context, event order.Created) error {
	o := event.Order
	for _, m := range createdMessages {
		if m.role == kernel.RoleCustomer {
			continue
		}
		d.deliver(ctx, d.notification(m, o.ID(), o.Status(), o.CustomerID(), o.BusinessID(), nil))
	}
	return nil
}

func (d *Dispatcher) OnStatusChanged(ctx context.Context, event order.StatusChanged) error {
	for _, m := range statusTargets(event) {
		n := d.notification(m, event.OrderID, event.NewStatus, event.CustomerID, event.BusinessID, event.DeliveryID)
		d.deliver(ctx, n)
	}
	return nil
}

// Targets lists the recipients a status change would reach, after
// suppressing the acting role.
func Targets(event order.StatusChanged) []ports.Recipient {
	var out []ports.Recipient
	for _, m := range statusTargets(event) {
		out = append(out, recipient(m.role, event.CustomerID, event.BusinessID, event.DeliveryID))
	}
	return out
}

func statusTargets(event order.StatusChanged) []message {
	var out []message
	for _, m := range statusMessages[event.NewStatus] {
		if event.ActedBy.Is(m.role) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (d *Dispatcher) notification(
	m message,
	orderID kernel.UUID,
	status order.Status,
	customerID, businessID kernel.UUID,
	deliveryID *kernel.UUID,
) ports.Notification {
	return ports.Notification{
		ID:        kernel.NewUUID(),
		Recipient: recipient(m.role, customerID, businessID, deliveryID),
		Title:     m.title,
		Body:      fmt.Sprintf(m.body, shortID(orderID)),
		OrderID:   orderID,
		Status:    status,
		SentAt:    d.now(),
	}
}

func (d *Dispatcher) deliver(ctx context.Context, n ports.Notification) {
	if err := d.transport.Deliver(ctx, n); err != nil {
		d.logger.WarnContext(ctx, "notification not delivered",
			slog.String("recipient", n.Recipient.String()),
			slog.String("order_id", n.OrderID.String()),
			slog.String("title", n.Title),
			slog.Any("error", err))
	}
}

func recipient(role kernel.Role, customerID, businessID kernel.UUID, deliveryID *kernel.UUID) ports.Recipient {
	r := ports.Recipient{Role: role}
	switch role {
	case kernel.RoleCustomer:
		id := customerID
		r.UserID = &id
	case kernel.RoleBusiness:
		id := businessID
		r.UserID = &id
	case kernel.RoleDelivery:
		if deliveryID != nil {
			id := *deliveryID
			r.UserID = &id
		}
	}
	return r
}

func shortID(id kernel.UUID) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
