package queries

import (
	"context"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/ports"
)

type GetActiveCouriersQueryHandler struct {
	couriers ports.CourierRepository
	actors   ports.ActorProvider
}

func NewGetActiveCouriersQueryHandler(
	couriers ports.CourierRepository,
	actors ports.ActorProvider,
) GetActiveCouriersQueryHandler {
	return GetActiveCouriersQueryHandler{couriers: couriers, actors: actors}
}

// Handle is open to business and delivery actors.
func (h GetActiveCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveCouriersQuery,
) ([]CourierResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if _, err := currentActor(ctx, h.actors, kernel.RoleBusiness, kernel.RoleDelivery); err != nil {
		return nil, err
	}

	moving, err := h.couriers.GetAllMoving(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]CourierResponse, 0, len(moving))
	for _, c := range moving {
		result = append(result, newCourierResponse(c))
	}
	return result, nil
}
