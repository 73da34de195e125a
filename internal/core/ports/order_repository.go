package ports

import (
	"context"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
)

// OrderFilter narrows Find. Empty fields do not filter.
type OrderFilter struct {
	CustomerID *kernel.UUID
	Statuses   []order.Status
}

// OrderRepository defines the persistence contract for order aggregates.
// Every list it returns is ordered by the order's store sequence.
type OrderRepository interface {
	// Add persists a new order together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, deliveryID and updatedAt of an existing order.
	// Items and total never change after creation and are not rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ObjectNotFoundError when no order has the id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Find returns orders matching every non-empty field of the filter.
	Find(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// All returns every stored order, used to hydrate the in-memory store.
	All(ctx context.Context) ([]*order.Order, error)
}
