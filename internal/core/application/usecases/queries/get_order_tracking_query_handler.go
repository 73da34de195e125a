package queries

import (
	"context"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/ports"
	"foodorders/internal/pkg/errs"
)

type GetOrderTrackingQueryHandler struct {
	orders   OrderReader
	couriers ports.CourierRepository
	actors   ports.ActorProvider
}

func NewGetOrderTrackingQueryHandler(
	orders OrderReader,
	couriers ports.CourierRepository,
	actors ports.ActorProvider,
) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{orders: orders, couriers: couriers, actors: actors}
}

// Handle returns errs.ObjectNotFoundError when nobody is carrying the order,
// and for customers asking about someone else's order.
func (h GetOrderTrackingQueryHandler) Handle(ctx context.Context, query GetOrderTrackingQuery) (CourierResponse, error) {
	if err := query.Validate(); err != nil {
		return CourierResponse{}, err
	}

	actor, err := currentActor(ctx, h.actors)
	if err != nil {
		return CourierResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return CourierResponse{}, err
	}
	if actor.Is(kernel.RoleCustomer) && !o.IsOwnedBy(actor.ID()) {
		return CourierResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	c, err := h.couriers.GetByOrder(ctx, o.ID())
	if err != nil {
		return CourierResponse{}, err
	}
	return newCourierResponse(c), nil
}
