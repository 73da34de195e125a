// Package ports defines the contracts between the ordering core and the
// infrastructure around it: persistence, notification delivery, identity and
// event publishing.
package ports

import (
	"context"

	"foodorders/internal/core/domain/model/courier"
	"foodorders/internal/core/domain/model/kernel"
)

// CourierRepository stores the tracking state of couriers, keyed by the order
// they carry.
type CourierRepository interface {
	// Save inserts or replaces the courier tracking the courier's order.
	Save(ctx context.Context, c *courier.Courier) error

	// GetByOrder returns errs.ObjectNotFoundError when the order is not tracked.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*courier.Courier, error)

	// Remove stops tracking an order. Removing an untracked order is a no-op.
	Remove(ctx context.Context, orderID kernel.UUID) error

	// GetAllMoving returns couriers that have not arrived yet.
	GetAllMoving(ctx context.Context) ([]*courier.Courier, error)
}
