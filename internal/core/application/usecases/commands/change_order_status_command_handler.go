package commands

import (
	"context"
	"time"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"
)

// Authorizer decides whether an actor may move an order to a status.
type Authorizer interface {
	Authorize(o *order.Order, to order.Status, actor kernel.Actor) error
}

// ChangeOrderStatusCommandHandler is the only path by which an order's status
// changes.
type ChangeOrderStatusCommandHandler struct {
	store     OrderStore
	actors    ports.ActorProvider
	policy    Authorizer
	publisher ports.EventPublisher
	now       func() time.Time
}

func NewChangeOrderStatusCommandHandler(
	store OrderStore,
	actors ports.ActorProvider,
	policy Authorizer,
	publisher ports.EventPublisher,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		store:     store,
		actors:    actors,
		policy:    policy,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Handle re-checks the transition against the order as it is under the
// store's per-order lock, so of two racing requests the loser reports an
// invalid transition from the winner's status. order:statusChanged is
// published only after the new status is visible in the store.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor, err := currentActor(ctx, h.actors)
	if err != nil {
		return nil, err
	}

	var old order.Status
	updated, err := h.store.ApplyStatus(ctx, cmd.OrderID(), func(working *order.Order) error {
		if err := h.policy.Authorize(working, cmd.Status(), actor); err != nil {
			return err
		}
		old = working.Status()
		return working.ChangeStatus(cmd.Status(), actor, h.now())
	})
	if err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, order.NewStatusChanged(updated, old, actor))
	return updated, nil
}
