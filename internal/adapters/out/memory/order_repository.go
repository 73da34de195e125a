package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"
	"foodorders/internal/pkg/errs"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]*order.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[kernel.UUID]*order.Order)}
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[aggregate.ID()] = aggregate.Clone()
	return nil
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	r.orders[aggregate.ID()] = aggregate.Clone()
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o.Clone(), nil
}

func (r *OrderRepository) Find(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	for _, s := range filter.Statuses {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	return r.sorted(func(o *order.Order) bool {
		if filter.CustomerID != nil && !o.IsOwnedBy(*filter.CustomerID) {
			return false
		}
		return len(filter.Statuses) == 0 || slices.Contains(filter.Statuses, o.Status())
	}), nil
}

func (r *OrderRepository) All(_ context.Context) ([]*order.Order, error) {
	return r.sorted(func(*order.Order) bool { return true }), nil
}

func (r *OrderRepository) sorted(match func(*order.Order) bool) []*order.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if match(o) {
			out = append(out, o.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *order.Order) int {
		return cmp.Compare(a.Sequence(), b.Sequence())
	})
	return out
}
