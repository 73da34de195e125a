// Package memory keeps every aggregate in process memory. It backs the
// service when no database is configured and makes a convenient fake in
// tests. Transactions are not isolated: writes are visible immediately and
// Rollback does not undo them.
package memory

import (
	"context"
	"errors"

	"foodorders/internal/core/ports"
)

// ErrNoTransaction mirrors the GORM unit of work: Commit and Rollback need an
// open transaction.
var ErrNoTransaction = errors.New("no transaction in progress")

// Storage owns the repositories shared by every unit of work.
type Storage struct {
	Orders   *OrderRepository
	Ratings  *RatingRepository
	Couriers *CourierRepository
}

func NewStorage() *Storage {
	return &Storage{
		Orders:   NewOrderRepository(),
		Ratings:  NewRatingRepository(),
		Couriers: NewCourierRepository(),
	}
}

// UnitOfWorkFactory hands out units of work over one Storage.
type UnitOfWorkFactory struct {
	storage *Storage
}

func NewUnitOfWorkFactory(storage *Storage) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{storage: storage}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{storage: f.storage}
}

type UnitOfWork struct {
	storage *Storage
	active  bool
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	u.active = true
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.active = false
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.active = false
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return u.storage.Orders
}

func (u *UnitOfWork) RatingRepository() ports.RatingRepository {
	return u.storage.Ratings
}

func (u *UnitOfWork) CourierRepository() ports.CourierRepository {
	return u.storage.Couriers
}
