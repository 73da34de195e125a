package commands

import (
	"context"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"
)

// CreateOrderCommandHandler places an order for the current customer with the
// single configured business, then publishes order:created.
type CreateOrderCommandHandler struct {
	store      OrderStore
	actors     ports.ActorProvider
	publisher  ports.EventPublisher
	businessID kernel.UUID
}

func NewCreateOrderCommandHandler(
	store OrderStore,
	actors ports.ActorProvider,
	publisher ports.EventPublisher,
	businessID kernel.UUID,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		store:      store,
		actors:     actors,
		publisher:  publisher,
		businessID: businessID,
	}
}

// Handle fails with order.ErrForbiddenRole unless the actor is a customer,
// and with a validation error when the total does not match the items.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor, err := currentActor(ctx, h.actors, kernel.RoleCustomer)
	if err != nil {
		return nil, err
	}

	created, err := h.store.Create(ctx, order.NewOrderParams{
		CustomerID: actor.ID(),
		BusinessID: h.businessID,
		Items:      cmd.Items(),
		Total:      cmd.Total(),
		Location:   cmd.Location(),
	})
	if err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, order.NewCreated(created))
	return created, nil
}
