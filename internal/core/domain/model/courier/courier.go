package courier

import (
	"errors"
	"time"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/errs"
	"foodorders/internal/pkg/guard"
)

// Step is the share of the remaining distance a courier covers per movement tick.
const Step = 0.1

var (
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrAlreadyArrived is returned by Move once the courier stands at its destination.
	ErrAlreadyArrived = errors.New("courier has already arrived")
)

// Courier is the simulated position of a delivery actor carrying one order.
// It starts at the restaurant when the order goes ON_THE_WAY and heads for the
// customer. A courier never changes the order it carries; tracking is purely
// informational.
//
// Example:
//
//	c, err := courier.NewCourier(deliveryID, orderID, restaurant, customer, time.Now())
//	if err != nil {
//	    return err
//	}
//	for !c.HasArrived() {
//	    _ = c.Move(time.Now())
//	}
type Courier struct {
	// id is the delivery actor id
	id kernel.UUID
	// orderID is the order being carried
	orderID kernel.UUID

	location    kernel.Location
	destination kernel.Location

	startedAt time.Time
	arrivedAt *time.Time

	guard guard.ConstructorGuard
}

// NewCourier places a courier at origin heading for destination.
func NewCourier(id, orderID kernel.UUID, origin, destination kernel.Location, at time.Time) (*Courier, error) {
	c := &Courier{
		startedAt: at.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setOrderID(orderID),
		c.setLocation(origin),
		c.setDestination(destination),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier rebuilds a courier from persisted state.
func RestoreCourier(
	id, orderID kernel.UUID,
	location, destination kernel.Location,
	startedAt time.Time,
	arrivedAt *time.Time,
) (*Courier, error) {
	c, err := NewCourier(id, orderID, location, destination, startedAt)
	if err != nil {
		return nil, err
	}
	if arrivedAt != nil {
		at := arrivedAt.UTC()
		c.arrivedAt = &at
	}
	return c, nil
}

func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() kernel.UUID {
	return c.id
}

func (c *Courier) OrderID() kernel.UUID {
	return c.orderID
}

func (c *Courier) Location() kernel.Location {
	return c.location
}

func (c *Courier) Destination() kernel.Location {
	return c.destination
}

func (c *Courier) StartedAt() time.Time {
	return c.startedAt
}

// ArrivedAt is nil while the courier is still moving.
func (c *Courier) ArrivedAt() *time.Time {
	if c.arrivedAt == nil {
		return nil
	}
	at := *c.arrivedAt
	return &at
}

func (c *Courier) HasArrived() bool {
	return c.arrivedAt != nil
}

// Move advances the courier by Step of the remaining distance. Reaching the
// destination records the arrival time.
func (c *Courier) Move(at time.Time) error {
	if c.HasArrived() {
		return ErrAlreadyArrived
	}

	next, err := c.location.MoveTowards(c.destination, Step)
	if err != nil {
		return err
	}
	c.location = next

	if eq, _ := next.IsEqual(c.destination); eq {
		arrived := at.UTC()
		c.arrivedAt = &arrived
	}
	return nil
}

// RemainingDistance is the straight-line distance to the destination, in degrees.
func (c *Courier) RemainingDistance() float64 {
	d, _ := c.location.Distance(c.destination)
	return d
}

// Clone returns a copy that shares no mutable state.
func (c *Courier) Clone() *Courier {
	if c == nil {
		return nil
	}
	cp := *c
	cp.arrivedAt = c.ArrivedAt()
	return &cp
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courier id", err)
	}
	c.id = id
	return nil
}

func (c *Courier) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	c.orderID = id
	return nil
}

func (c *Courier) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *Courier) setDestination(destination kernel.Location) error {
	if err := destination.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("destination", err)
	}
	c.destination = destination
	return nil
}
