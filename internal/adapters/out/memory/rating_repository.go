package memory

import (
	"context"
	"sync"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/rating"
	"foodorders/internal/pkg/errs"
)

type RatingRepository struct {
	mu      sync.RWMutex
	ratings map[kernel.UUID]*rating.Rating
}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{ratings: make(map[kernel.UUID]*rating.Rating)}
}

func (r *RatingRepository) Add(_ context.Context, aggregate *rating.Rating) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ratings[aggregate.OrderID()]; ok {
		return rating.ErrAlreadyRated
	}
	cp := *aggregate
	r.ratings[aggregate.OrderID()] = &cp
	return nil
}

func (r *RatingRepository) GetByOrder(_ context.Context, orderID kernel.UUID) (*rating.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found, ok := r.ratings[orderID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("rating", orderID.String())
	}
	cp := *found
	return &cp, nil
}
