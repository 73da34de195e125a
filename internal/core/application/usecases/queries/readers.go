// Package queries contains read operations. Handlers never change state and
// never cache: every call reads the order store afresh.
package queries

import (
	"context"
	"errors"
	"fmt"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"
)

// OrderReader is the read side of the order store.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)
	ListByStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error)
}

// StatusAdvisor tells which statuses an actor may move an order to.
type StatusAdvisor interface {
	NextStatuses(o *order.Order, actor kernel.Actor) []order.Status
}

func currentActor(ctx context.Context, actors ports.ActorProvider, roles ...kernel.Role) (kernel.Actor, error) {
	actor, err := actors.CurrentActor(ctx)
	if err != nil {
		return kernel.Actor{}, err
	}
	if err = actor.Validate(); err != nil {
		return kernel.Actor{}, errors.Join(ports.ErrNoActor, err)
	}
	if len(roles) == 0 {
		return actor, nil
	}
	for _, r := range roles {
		if actor.Is(r) {
			return actor, nil
		}
	}
	return kernel.Actor{}, fmt.Errorf("%w: %s cannot do this", order.ErrForbiddenRole, actor.Role())
}
