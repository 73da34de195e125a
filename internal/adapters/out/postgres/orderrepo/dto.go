// Package orderrepo persists order aggregates in two tables: orders and
// order_items.
package orderrepo

import (
	"time"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Sequence   int64           `gorm:"not null;uniqueIndex"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	BusinessID uuid.UUID       `gorm:"type:uuid;not null"`
	DeliveryID *uuid.UUID      `gorm:"type:uuid;index"`
	Total      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status     string          `gorm:"type:varchar(16);not null;index"`
	Location   string          `gorm:"type:text"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
	Items      []ItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one cart line. Position keeps the order the customer listed them in.
type ItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey;autoIncrement:false"`
	ProductID string          `gorm:"type:varchar(64);not null"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	var deliveryID *uuid.UUID
	if id := o.DeliveryID(); id != nil {
		raw := id.Bytes()
		deliveryID = &raw
	}

	items := make([]ItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, ItemDTO{
			OrderID:   o.ID().Bytes(),
			Position:  i,
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Decimal(),
		})
	}

	return OrderDTO{
		ID:         o.ID().Bytes(),
		Sequence:   o.Sequence(),
		CustomerID: o.CustomerID().Bytes(),
		BusinessID: o.BusinessID().Bytes(),
		DeliveryID: deliveryID,
		Total:      o.Total().Decimal(),
		Status:     o.Status().String(),
		Location:   o.Location(),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
		Items:      items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}

	var deliveryID *kernel.UUID
	if dto.DeliveryID != nil {
		dID, idErr := kernel.UUIDFromBytes((*dto.DeliveryID)[:])
		if idErr != nil {
			return nil, idErr
		}
		deliveryID = &dID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		price, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(itemDTO.ProductID, itemDTO.Name, itemDTO.Quantity, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:         id,
		CustomerID: customerID,
		BusinessID: businessID,
		DeliveryID: deliveryID,
		Items:      items,
		Total:      total,
		Status:     status,
		Location:   dto.Location,
		CreatedAt:  dto.CreatedAt,
		UpdatedAt:  dto.UpdatedAt,
		Sequence:   dto.Sequence,
	})
}
