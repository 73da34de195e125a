package ports

import (
	"context"
	"fmt"
	"time"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
)

// Recipient addresses a notification to a whole role or, when UserID is set,
// to one user acting in that role.
type Recipient struct {
	Role   kernel.Role
	UserID *kernel.UUID
}

func (r Recipient) String() string {
	if r.UserID == nil {
		return r.Role.String()
	}
	return fmt.Sprintf("%s:%s", r.Role, r.UserID)
}

// Notification is a human-readable message about an order.
type Notification struct {
	ID        kernel.UUID
	Recipient Recipient
	Title     string
	Body      string
	OrderID   kernel.UUID
	Status    order.Status
	SentAt    time.Time
}

// NotificationTransport delivers notifications outside the core: an in-app
// inbox, a log, a message broker. Callers log failures and never retry.
type NotificationTransport interface {
	Deliver(ctx context.Context, n Notification) error
}

// NotificationInbox lists what was delivered to an actor, newest first. An
// actor sees notifications addressed to it and broadcasts to its role.
type NotificationInbox interface {
	For(ctx context.Context, actor kernel.Actor, limit int) ([]Notification, error)
}
