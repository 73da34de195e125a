package memory

import (
	"context"
	"slices"
	"sync"

	"foodorders/internal/core/domain/model/courier"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/errs"
)

type CourierRepository struct {
	mu       sync.RWMutex
	couriers map[kernel.UUID]*courier.Courier
}

func NewCourierRepository() *CourierRepository {
	return &CourierRepository{couriers: make(map[kernel.UUID]*courier.Courier)}
}

func (r *CourierRepository) Save(_ context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.couriers[aggregate.OrderID()] = aggregate.Clone()
	return nil
}

func (r *CourierRepository) GetByOrder(_ context.Context, orderID kernel.UUID) (*courier.Courier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.couriers[orderID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("courier", orderID.String())
	}
	return c.Clone(), nil
}

func (r *CourierRepository) Remove(_ context.Context, orderID kernel.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.couriers, orderID)
	return nil
}

func (r *CourierRepository) GetAllMoving(_ context.Context) ([]*courier.Courier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*courier.Courier, 0, len(r.couriers))
	for _, c := range r.couriers {
		if !c.HasArrived() {
			out = append(out, c.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *courier.Courier) int {
		return a.StartedAt().Compare(b.StartedAt())
	})
	return out, nil
}
