package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// MoveCouriersCommandHandler runs one tick of the tracking simulation. Arrival
// is recorded on the courier only; marking the order delivered stays with the
// delivery actor.
type MoveCouriersCommandHandler struct {
	uowFactory CourierUoWFactory
	logger     *slog.Logger
	now        func() time.Time
}

func NewMoveCouriersCommandHandler(uowFactory CourierUoWFactory, logger *slog.Logger) MoveCouriersCommandHandler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return MoveCouriersCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "move_couriers"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle moves every courier in one transaction. One failing courier aborts
// the whole tick so positions never drift apart between ticks.
func (h *MoveCouriersCommandHandler) Handle(ctx context.Context, cmd MoveCouriersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CourierRepository()
	moving, err := repo.GetAllMoving(ctx)
	if err != nil {
		return fmt.Errorf("list moving couriers: %w", err)
	}

	at := h.now()
	arrived := 0
	for _, c := range moving {
		if err = c.Move(at); err != nil {
			return fmt.Errorf("move courier for order %s: %w", c.OrderID(), err)
		}
		if err = repo.Save(ctx, c); err != nil {
			return err
		}
		if c.HasArrived() {
			arrived++
			h.logger.InfoContext(ctx, "courier arrived", "order_id", c.OrderID().String())
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}
	if len(moving) > 0 {
		h.logger.DebugContext(ctx, "couriers moved", "moved", len(moving), "arrived", arrived)
	}
	return nil
}
