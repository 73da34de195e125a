package order

import (
	"errors"
	"fmt"
	"time"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// NewOrderParams is what checkout supplies when placing an order.
type NewOrderParams struct {
	CustomerID kernel.UUID
	BusinessID kernel.UUID
	Items      []Item
	Total      kernel.Money
	Location   string
}

// Order is the aggregate root of the ordering domain. It tracks a customer's
// purchase from checkout until it is delivered or cancelled.
//
// Invariants:
//   - items is non-empty and never changes after creation
//   - total equals the sum of item subtotals at creation and is never recomputed
//   - status changes only through ChangeStatus, along the edges of Status
//   - deliveryID is set exactly when a courier takes the order ON_THE_WAY
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	businessID kernel.UUID
	deliveryID *kernel.UUID

	items    []Item
	total    kernel.Money
	status   Status
	location string

	createdAt time.Time
	updatedAt time.Time

	// sequence is the insertion position assigned by the order store.
	sequence int64

	isConstructed bool
}

// NewOrder creates a PENDING order. It fails with a validation error when
// items is empty, any item is invalid, or total differs from the sum of the
// item subtotals. createdAt and updatedAt are both set to at, in UTC.
//
// Example:
//
//	burger, _ := order.NewItem("burger", "Burger", 2, kernel.MoneyFromInt(20))
//	o, err := order.NewOrder(kernel.NewUUID(), order.NewOrderParams{
//	    CustomerID: customerID,
//	    BusinessID: businessID,
//	    Items:      []order.Item{burger},
//	    Total:      kernel.MoneyFromInt(40),
//	}, time.Now())
func NewOrder(id kernel.UUID, params NewOrderParams, at time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		location:      params.Location,
		createdAt:     at.UTC(),
		updatedAt:     at.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(params.CustomerID),
		o.setBusinessID(params.BusinessID),
		o.setItems(params.Items),
	); err != nil {
		return nil, err
	}

	if err := o.setTotal(params.Total); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams carries persisted state back into an Order.
type RestoreParams struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	BusinessID kernel.UUID
	DeliveryID *kernel.UUID
	Items      []Item
	Total      kernel.Money
	Status     Status
	Location   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Sequence   int64
}

// RestoreOrder rebuilds an order loaded from storage. The total is trusted as
// stored; it was validated when the order was created.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		location:      p.Location,
		createdAt:     p.CreatedAt.UTC(),
		updatedAt:     p.UpdatedAt.UTC(),
		sequence:      p.Sequence,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCustomerID(p.CustomerID),
		o.setBusinessID(p.BusinessID),
		o.setItems(p.Items),
		p.Total.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if p.DeliveryID != nil {
		if err := p.DeliveryID.Validate(); err != nil {
			return nil, err
		}
		id := *p.DeliveryID
		o.deliveryID = &id
	}

	o.total = p.Total
	o.status = p.Status
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) BusinessID() kernel.UUID {
	return o.businessID
}

// DeliveryID returns the courier that picked the order up, or nil.
func (o *Order) DeliveryID() *kernel.UUID {
	if o.deliveryID == nil {
		return nil
	}
	id := *o.deliveryID
	return &id
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Location() string {
	return o.location
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) Sequence() int64 {
	return o.sequence
}

func (o *Order) IsOwnedBy(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// AssignSequence records the store insertion position. It may be set once.
func (o *Order) AssignSequence(seq int64) error {
	if seq <= 0 {
		return errs.NewValueIsOutOfRangeError("sequence", seq, 1, "+inf")
	}
	if o.sequence != 0 {
		return errs.NewValueIsInvalidErrorWithCause("sequence", fmt.Errorf("already assigned %d", o.sequence))
	}
	o.sequence = seq
	return nil
}

// ChangeStatus moves the order along one edge of the lifecycle and refreshes
// updatedAt. A delivery actor moving the order ON_THE_WAY becomes its
// deliveryID. Role authorization is the caller's concern; this method only
// guards the state machine.
func (o *Order) ChangeStatus(to Status, actor kernel.Actor, at time.Time) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(to) {
		return NewInvalidTransitionError(o.id, o.status, to)
	}

	if to == OnTheWay && actor.Is(kernel.RoleDelivery) {
		id := actor.ID()
		o.deliveryID = &id
	}

	o.status = to
	o.updatedAt = at.UTC()
	return nil
}

// Clone returns a deep copy that shares no mutable state with o.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.items = o.Items()
	c.deliveryID = o.DeliveryID()
	return &c
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("business id", err)
	}
	o.businessID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

// setTotal requires items to be set.
func (o *Order) setTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("total", err)
	}

	sum := kernel.ZeroMoney()
	for _, item := range o.items {
		sum = sum.Add(item.Subtotal())
	}
	if !sum.IsEqual(total) {
		return errs.NewValueIsInvalidErrorWithCause(
			"total",
			fmt.Errorf("%s does not match the items sum %s", total, sum),
		)
	}

	o.total = total
	return nil
}
