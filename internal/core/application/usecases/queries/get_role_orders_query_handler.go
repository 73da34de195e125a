package queries

import (
	"context"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"
	"foodorders/internal/pkg/errs"
)

type viewRule struct {
	statuses []order.Status
	// own lists the actor's orders as a customer instead of filtering by status.
	own bool
}

type roleViews struct {
	byDefault View
	views     map[View]viewRule
}

// roleOrderViews is the single place where a role's view maps to a store call.
var roleOrderViews = map[kernel.Role]roleViews{
	kernel.RoleBusiness: {
		byDefault: ViewIncoming,
		views: map[View]viewRule{
			ViewIncoming:   {statuses: []order.Status{order.Pending}},
			ViewInProgress: {statuses: []order.Status{order.Preparing}},
		},
	},
	kernel.RoleDelivery: {
		byDefault: ViewReadyForPickup,
		views: map[View]viewRule{
			ViewReadyForPickup: {statuses: []order.Status{order.Preparing}},
			ViewMyDeliveries:   {statuses: []order.Status{order.OnTheWay}},
		},
	},
	kernel.RoleCustomer: {
		byDefault: ViewMine,
		views: map[View]viewRule{
			ViewMine: {own: true},
		},
	},
}

// GetRoleOrdersQueryHandler answers "which orders does my role care about
// right now".
type GetRoleOrdersQueryHandler struct {
	orders  OrderReader
	actors  ports.ActorProvider
	advisor StatusAdvisor
}

func NewGetRoleOrdersQueryHandler(
	orders OrderReader,
	actors ports.ActorProvider,
	advisor StatusAdvisor,
) GetRoleOrdersQueryHandler {
	return GetRoleOrdersQueryHandler{orders: orders, actors: actors, advisor: advisor}
}

// Handle returns orders in store insertion order. A view the actor's role does
// not have is a validation error.
func (h GetRoleOrdersQueryHandler) Handle(ctx context.Context, query GetRoleOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor, err := currentActor(ctx, h.actors)
	if err != nil {
		return nil, err
	}

	views, ok := roleOrderViews[actor.Role()]
	if !ok {
		return nil, errs.NewValueIsInvalidError("role")
	}

	view := query.View()
	if view == "" {
		view = views.byDefault
	}
	rule, ok := views.views[view]
	if !ok {
		return nil, errs.NewValueIsInvalidError("view")
	}

	var found []*order.Order
	if rule.own {
		found, err = h.orders.ListByCustomer(ctx, actor.ID())
	} else {
		found, err = h.orders.ListByStatus(ctx, rule.statuses...)
	}
	if err != nil {
		return nil, err
	}

	result := make([]OrderResponse, 0, len(found))
	for _, o := range found {
		result = append(result, newOrderResponse(o, actor, h.advisor))
	}
	return result, nil
}

// Views lists the views a role can ask for, default first.
func Views(role kernel.Role) []View {
	views, ok := roleOrderViews[role]
	if !ok {
		return nil
	}
	out := []View{views.byDefault}
	for _, v := range []View{ViewIncoming, ViewInProgress, ViewReadyForPickup, ViewMyDeliveries, ViewMine} {
		if _, has := views.views[v]; has && v != views.byDefault {
			out = append(out, v)
		}
	}
	return out
}
