package commands

import (
	"context"
	"time"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/rating"
	"foodorders/internal/core/ports"
)

// RateOrderCommandHandler stores a customer's rating of a delivered order.
// The order itself is only read.
type RateOrderCommandHandler struct {
	store      OrderStore
	actors     ports.ActorProvider
	uowFactory RatingUoWFactory
	now        func() time.Time
}

func NewRateOrderCommandHandler(
	store OrderStore,
	actors ports.ActorProvider,
	uowFactory RatingUoWFactory,
) RateOrderCommandHandler {
	return RateOrderCommandHandler{
		store:      store,
		actors:     actors,
		uowFactory: uowFactory,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (h RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) (*rating.Rating, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor, err := currentActor(ctx, h.actors, kernel.RoleCustomer)
	if err != nil {
		return nil, err
	}

	o, err := h.store.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	r, err := rating.NewRating(o, actor, cmd.Score(), cmd.Comment(), h.now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RatingRepository().Add(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
