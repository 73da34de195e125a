// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every handler re-reads the current actor, validates, writes, and only then
// publishes events.
package commands

import (
	"context"
	"errors"
	"fmt"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"
)

// OrderStore is the part of the order store command handlers write through.
type OrderStore interface {
	Create(ctx context.Context, params order.NewOrderParams) (*order.Order, error)
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	ApplyStatus(ctx context.Context, id kernel.UUID, apply func(*order.Order) error) (*order.Order, error)
}

// Unit of Work interfaces provide transaction management for command handlers.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	RatingRepoFactory interface {
		RatingRepository() ports.RatingRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// RatingUoW manages transactions for rating-only operations.
	RatingUoW interface {
		TxManager
		RatingRepoFactory
	}

	RatingUoWFactory interface {
		Create() RatingUoW
	}

	// CourierUoW manages transactions for courier tracking.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}
)

// currentActor fetches the actor for this call and requires one of roles
// when any are given.
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
