package kernel

import (
	"errors"
	"fmt"
	"strings"

	"foodorders/internal/pkg/errs"
	"foodorders/internal/pkg/guard"
)

// Role is the viewpoint an actor uses to interact with orders.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleBusiness Role = "BUSINESS"
	RoleDelivery Role = "DELIVERY"
)

// Roles lists every valid role in display order.
func Roles() []Role {
	return []Role{RoleCustomer, RoleBusiness, RoleDelivery}
}

// ParseRole accepts any letter case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleBusiness, RoleDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor")

// Actor is the identity and active role behind a command or query.
type Actor struct {
	id    UUID
	role  Role
	guard guard.ConstructorGuard
}

func NewActor(id UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// Is reports whether the actor currently acts in the given role.
func (a Actor) Is(role Role) bool {
	return a.role == role
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) String() string {
	return fmt.Sprintf("%s(%s)", a.role, a.id)
}
