package order

import (
	"time"

	"foodorders/internal/core/domain/model/kernel"
)

// Event names published on the event bus.
const (
	EventCreated       = "order:created"
	EventStatusChanged = "order:statusChanged"
)

// Created is published once an order has been stored. Order is a snapshot;
// handlers must not expect it to track later changes.
type Created struct {
	Order      *Order
	OccurredAt time.Time
}

func NewCreated(o *Order) Created {
	return Created{Order: o.Clone(), OccurredAt: o.CreatedAt()}
}

func (e Created) EventName() string {
	return EventCreated
}

// StatusChanged is published after a transition is visible in the store.
type StatusChanged struct {
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	BusinessID kernel.UUID
	DeliveryID *kernel.UUID
	OldStatus  Status
	NewStatus  Status
	ActedBy    kernel.Actor
	OccurredAt time.Time
}

// NewStatusChanged builds the event from the order as it is after the change.
func NewStatusChanged(o *Order, old Status, actedBy kernel.Actor) StatusChanged {
	return StatusChanged{
		OrderID:    o.ID(),
		CustomerID: o.CustomerID(),
		BusinessID: o.BusinessID(),
		DeliveryID: o.DeliveryID(),
		OldStatus:  old,
		NewStatus:  o.Status(),
		ActedBy:    actedBy,
		OccurredAt: o.UpdatedAt(),
	}
}

func (e StatusChanged) EventName() string {
	return EventStatusChanged
}
