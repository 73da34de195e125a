package commands

import (
	"errors"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/pkg/errs"
	"foodorders/internal/pkg/guard"
)

var (
	ErrTrackCourierCommandIsNotConstructed = errors.New(
		"TrackCourierCommand must be created via NewTrackCourierCommand constructor",
	)
)

// TrackCourierCommand tells the tracking simulation that an order reached a
// new status. DeliveryID is required only for ON_THE_WAY.
type TrackCourierCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	deliveryID *kernel.UUID
	status     order.Status

	guard guard.ConstructorGuard
}

func NewTrackCourierCommand(orderID kernel.UUID, deliveryID *kernel.UUID, status order.Status) (TrackCourierCommand, error) {
	cmd := TrackCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
	); err != nil {
		return TrackCourierCommand{}, err
	}

	if status == order.OnTheWay {
		if deliveryID == nil {
			return TrackCourierCommand{}, errs.NewValueIsRequiredError("deliveryID")
		}
		id := *deliveryID
		cmd.deliveryID = &id
	}

	return cmd, nil
}

func (c TrackCourierCommand) Validate() error {
	return c.guard.Validate(ErrTrackCourierCommandIsNotConstructed)
}

func (c TrackCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c TrackCourierCommand) DeliveryID() *kernel.UUID {
	return c.deliveryID
}

func (c TrackCourierCommand) Status() order.Status {
	return c.status
}

func (c *TrackCourierCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	c.orderID = id
	return nil
}

func (c *TrackCourierCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
