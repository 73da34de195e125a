package ports

import (
	"context"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/rating"
)

type RatingRepository interface {
	// Add fails with rating.ErrAlreadyRated when the order is already rated.
	Add(ctx context.Context, r *rating.Rating) error

	// GetByOrder returns errs.ObjectNotFoundError when the order has no rating.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*rating.Rating, error)
}
