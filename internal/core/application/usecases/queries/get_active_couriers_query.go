package queries

import (
	"errors"
	"time"

	"foodorders/internal/core/domain/model/courier"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/pkg/guard"
)

var (
	ErrGetActiveCouriersQueryIsNotConstructed = errors.New(
		"GetActiveCouriersQuery must be created via NewGetActiveCouriersQuery constructor",
	)
)

// GetActiveCouriersQuery lists couriers still on their way, for the business
// and delivery map views.
//
// Example:
//
//	query := NewGetActiveCouriersQuery()
//	couriers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve couriers: %w", err)
//	}
//
//	for _, c := range couriers {
//	    fmt.Printf("Order %s at %s\n", c.OrderID, c.Location)
//	}
type GetActiveCouriersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetActiveCouriersQuery() GetActiveCouriersQuery {
	return GetActiveCouriersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetActiveCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveCouriersQueryIsNotConstructed)
}

// CourierResponse is the read model of a tracked courier.
type CourierResponse struct {
	CourierID         kernel.UUID
	OrderID           kernel.UUID
	Location          kernel.Location
	Destination       kernel.Location
	RemainingDistance float64
	StartedAt         time.Time
	ArrivedAt         *time.Time
}

func newCourierResponse(c *courier.Courier) CourierResponse {
	return CourierResponse{
		CourierID:         c.ID(),
		OrderID:           c.OrderID(),
		Location:          c.Location(),
		Destination:       c.Destination(),
		RemainingDistance: c.RemainingDistance(),
		StartedAt:         c.StartedAt(),
		ArrivedAt:         c.ArrivedAt(),
	}
}
