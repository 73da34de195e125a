package queries

import (
	"errors"
	"strings"

	"foodorders/internal/pkg/guard"
)

var (
	ErrGetRoleOrdersQueryIsNotConstructed = errors.New(
		"GetRoleOrdersQuery must be created via NewGetRoleOrdersQuery constructor",
	)
)

// View names a role-specific list of orders.
type View string

const (
	ViewIncoming       View = "incoming"
	ViewInProgress     View = "in_progress"
	ViewReadyForPickup View = "ready_for_pickup"
	ViewMyDeliveries   View = "my_deliveries"
	ViewMine           View = "mine"
)

// GetRoleOrdersQuery asks for one of the current actor's views. An empty view
// selects the role's default.
//
// Example:
//
//	query := NewGetRoleOrdersQuery("incoming")
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("list orders: %w", err)
//	}
type GetRoleOrdersQuery struct {
	view View

	guard guard.ConstructorGuard
}

func NewGetRoleOrdersQuery(view string) GetRoleOrdersQuery {
	return GetRoleOrdersQuery{
		view:  View(strings.ToLower(strings.TrimSpace(view))),
		guard: guard.NewConstructorGuard(),
	}
}

func (q GetRoleOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRoleOrdersQueryIsNotConstructed)
}

func (q GetRoleOrdersQuery) View() View {
	return q.view
}
