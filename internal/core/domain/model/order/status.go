package order

import (
	"fmt"
	"strings"

	"foodorders/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	PENDING ──> PREPARING ──> ON_THE_WAY ──> DELIVERED
//	   │            │
//	   └────────────┴──> CANCELLED
//
// DELIVERED and CANCELLED are terminal. Status is stored and transmitted by
// its string value.
type Status string

const (
	Pending   Status = "PENDING"
	Preparing Status = "PREPARING"
	OnTheWay  Status = "ON_THE_WAY"
	Delivered Status = "DELIVERED"
	Cancelled Status = "CANCELLED"
)

// transitions is the only place the legal edges of the lifecycle are declared.
var transitions = map[Status][]Status{
	Pending:   {Preparing, Cancelled},
	Preparing: {OnTheWay, Cancelled},
	OnTheWay:  {Delivered},
	Delivered: {},
	Cancelled: {},
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Preparing, OnTheWay, Delivered, Cancelled}
}

// ParseStatus converts external input to a Status. Letter case is ignored.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks membership in the closed enumeration.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no transition may leave this status.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// AllowedTransitions returns a copy of the statuses reachable in one step.
// Unknown statuses have none.
func (s Status) AllowedTransitions() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}
