// Package courierrepo persists the tracking state of couriers carrying
// orders, one row per order.
package courierrepo

import (
	"time"

	"foodorders/internal/core/domain/model/courier"
	"foodorders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CourierDTO struct {
	OrderID     uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CourierID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	Location    LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Destination LocationDTO `gorm:"embedded;embeddedPrefix:destination_"`
	StartedAt   time.Time   `gorm:"not null"`
	ArrivedAt   *time.Time  `gorm:"index"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

type LocationDTO struct {
	Lat float64 `gorm:"type:double precision"`
	Lng float64 `gorm:"type:double precision"`
}

func fromDomain(c *courier.Courier) CourierDTO {
	return CourierDTO{
		OrderID:     c.OrderID().Bytes(),
		CourierID:   c.ID().Bytes(),
		Location:    LocationDTO{Lat: c.Location().Latitude(), Lng: c.Location().Longitude()},
		Destination: LocationDTO{Lat: c.Destination().Latitude(), Lng: c.Destination().Longitude()},
		StartedAt:   c.StartedAt(),
		ArrivedAt:   c.ArrivedAt(),
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewLocation(dto.Location.Lat, dto.Location.Lng)
	if err != nil {
		return nil, err
	}
	destination, err := kernel.NewLocation(dto.Destination.Lat, dto.Destination.Lng)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, orderID, location, destination, dto.StartedAt, dto.ArrivedAt)
}
