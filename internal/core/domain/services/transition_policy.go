package services

import (
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
)

type edge struct {
	from order.Status
	to   order.Status
}

// TransitionPolicy is the single table of role authority over order status
// edges. The state machine itself lives in order.Status; the policy only
// decides who may walk a legal edge.
//
// Rules:
//   - BUSINESS accepts (PENDING→PREPARING) and cancels PENDING or PREPARING orders
//   - DELIVERY picks up (PREPARING→ON_THE_WAY) and delivers (ON_THE_WAY→DELIVERED);
//     only the courier that picked the order up may deliver it
//   - CUSTOMER cancels its own PENDING or PREPARING orders
//
// Example:
//
//	policy := services.NewTransitionPolicy()
//	if err := policy.Authorize(o, order.Preparing, actor); err != nil {
//	    return err // *order.InvalidTransitionError or *order.ForbiddenRoleError
//	}
type TransitionPolicy struct {
	rules map[kernel.Role]map[edge]struct{}
}

func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{
		rules: map[kernel.Role]map[edge]struct{}{
			kernel.RoleBusiness: {
				{order.Pending, order.Preparing}:   {},
				{order.Pending, order.Cancelled}:   {},
				{order.Preparing, order.Cancelled}: {},
			},
			kernel.RoleDelivery: {
				{order.Preparing, order.OnTheWay}: {},
				{order.OnTheWay, order.Delivered}: {},
			},
			kernel.RoleCustomer: {
				{order.Pending, order.Cancelled}:   {},
				{order.Preparing, order.Cancelled}: {},
			},
		},
	}
}

// Authorize checks the edge against the state machine first and the actor
// second, so an illegal edge is always reported as an invalid transition
// whoever asks for it.
func (p TransitionPolicy) Authorize(o *order.Order, to order.Status, actor kernel.Actor) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}

	from := o.Status()
	if !from.CanTransitionTo(to) {
		return order.NewInvalidTransitionError(o.ID(), from, to)
	}

	if _, ok := p.rules[actor.Role()][edge{from, to}]; !ok {
		return order.NewForbiddenRoleError(o.ID(), actor.Role(), from, to, "")
	}

	switch actor.Role() {
	case kernel.RoleCustomer:
		if !o.IsOwnedBy(actor.ID()) {
			return order.NewForbiddenRoleError(o.ID(), actor.Role(), from, to, "not the customer who placed the order")
		}
	case kernel.RoleDelivery:
		if to == order.Delivered {
			if d := o.DeliveryID(); d == nil || !d.IsEqual(actor.ID()) {
				return order.NewForbiddenRoleError(o.ID(), actor.Role(), from, to, "order is carried by another courier")
			}
		}
	}

	return nil
}

// NextStatuses lists the statuses the actor could move o to right now.
func (p TransitionPolicy) NextStatuses(o *order.Order, actor kernel.Actor) []order.Status {
	var out []order.Status
	for _, to := range o.Status().AllowedTransitions() {
		if p.Authorize(o, to, actor) == nil {
			out = append(out, to)
		}
	}
	return out
}
