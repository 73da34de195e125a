package order

import (
	"errors"
	"fmt"

	"foodorders/internal/core/domain/model/kernel"
)

var (
	// ErrInvalidTransition matches every InvalidTransitionError via errors.Is.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrForbiddenRole matches every ForbiddenRoleError via errors.Is.
	ErrForbiddenRole = errors.New("role is not allowed to perform this transition")
)

// InvalidTransitionError is returned when the requested status is not
// reachable from the current one, including any move out of a terminal status.
type InvalidTransitionError struct {
	OrderID kernel.UUID
	From    Status
	To      Status
}

func NewInvalidTransitionError(orderID kernel.UUID, from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{OrderID: orderID, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	if e.From.IsTerminal() {
		return fmt.Sprintf("%s: order %s is already %s", ErrInvalidTransition, e.OrderID, e.From)
	}
	return fmt.Sprintf("%s: order %s cannot move from %s to %s", ErrInvalidTransition, e.OrderID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ForbiddenRoleError is returned when the edge is legal but the acting role,
// or the acting user within that role, may not take it.
type ForbiddenRoleError struct {
	OrderID kernel.UUID
	Role    kernel.Role
	From    Status
	To      Status
	Reason  string
}

func NewForbiddenRoleError(orderID kernel.UUID, role kernel.Role, from, to Status, reason string) *ForbiddenRoleError {
	return &ForbiddenRoleError{OrderID: orderID, Role: role, From: from, To: to, Reason: reason}
}

func (e *ForbiddenRoleError) Error() string {
	msg := fmt.Sprintf("%s: %s may not move order %s from %s to %s", ErrForbiddenRole, e.Role, e.OrderID, e.From, e.To)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *ForbiddenRoleError) Unwrap() error {
	return ErrForbiddenRole
}
