package queries

import (
	"time"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
)

type OrderItemResponse struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice kernel.Money
}

// OrderResponse is an order as one actor sees it. NextStatuses lists the
// transitions that actor may request now.
type OrderResponse struct {
	ID           kernel.UUID
	CustomerID   kernel.UUID
	BusinessID   kernel.UUID
	DeliveryID   *kernel.UUID
	Items        []OrderItemResponse
	Total        kernel.Money
	Status       order.Status
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextStatuses []order.Status
}

func newOrderResponse(o *order.Order, actor kernel.Actor, advisor StatusAdvisor) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	next := advisor.NextStatuses(o, actor)
	if next == nil {
		next = []order.Status{}
	}

	return OrderResponse{
		ID:           o.ID(),
		CustomerID:   o.CustomerID(),
		BusinessID:   o.BusinessID(),
		DeliveryID:   o.DeliveryID(),
		Items:        items,
		Total:        o.Total(),
		Status:       o.Status(),
		Location:     o.Location(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
		NextStatuses: next,
	}
}
