package commands

import (
	"context"
	"time"

	"foodorders/internal/core/domain/model/courier"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
)

// TrackCourierCommandHandler starts a courier at the business when its order
// goes ON_THE_WAY and stops tracking once the order is finished. It never
// touches the order.
type TrackCourierCommandHandler struct {
	uowFactory  CourierUoWFactory
	origin      kernel.Location
	destination kernel.Location
	now         func() time.Time
}

func NewTrackCourierCommandHandler(
	uowFactory CourierUoWFactory,
	origin kernel.Location,
	destination kernel.Location,
) TrackCourierCommandHandler {
	return TrackCourierCommandHandler{
		uowFactory:  uowFactory,
		origin:      origin,
		destination: destination,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (h TrackCourierCommandHandler) Handle(ctx context.Context, cmd TrackCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	switch cmd.Status() {
	case order.OnTheWay, order.Delivered, order.Cancelled:
	default:
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CourierRepository()

	if cmd.Status() == order.OnTheWay {
		c, err := courier.NewCourier(*cmd.DeliveryID(), cmd.OrderID(), h.origin, h.destination, h.now())
		if err != nil {
			return err
		}
		if err = repo.Save(ctx, c); err != nil {
			return err
		}
	} else if err := repo.Remove(ctx, cmd.OrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// OnStatusChanged adapts the handler to order:statusChanged.
func (h TrackCourierCommandHandler) OnStatusChanged(ctx context.Context, event order.StatusChanged) error {
	cmd, err := NewTrackCourierCommand(event.OrderID, event.DeliveryID, event.NewStatus)
	if err != nil {
		return err
	}
	return h.Handle(ctx, cmd)
}
