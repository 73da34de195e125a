package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes a single write transaction. The usual shape is
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//		return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//	// ... load, mutate, save through the repositories ...
//	return uow.Commit(ctx)
//
// Rollback after Commit returns an error that callers ignore.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	RatingRepository() RatingRepository
	CourierRepository() CourierRepository
}
