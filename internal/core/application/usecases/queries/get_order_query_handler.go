package queries

import (
	"context"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/ports"
	"foodorders/internal/pkg/errs"
)

type GetOrderQueryHandler struct {
	orders  OrderReader
	actors  ports.ActorProvider
	advisor StatusAdvisor
}

func NewGetOrderQueryHandler(orders OrderReader, actors ports.ActorProvider, advisor StatusAdvisor) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, actors: actors, advisor: advisor}
}

// Handle reports another customer's order as not found.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	actor, err := currentActor(ctx, h.actors)
	if err != nil {
		return OrderResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}

	if actor.Is(kernel.RoleCustomer) && !o.IsOwnedBy(actor.ID()) {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	return newOrderResponse(o, actor, h.advisor), nil
}
