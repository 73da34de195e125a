// Package ratingrepo persists order ratings, one row per order.
package ratingrepo

import (
	"context"
	"errors"
	"time"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/rating"
	"foodorders/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Score      int       `gorm:"type:smallint;not null"`
	Comment    string    `gorm:"type:varchar(500)"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (RatingDTO) TableName() string {
	return "ratings"
}

// GormRatingRepository implements ports.RatingRepository using GORM.
type GormRatingRepository struct {
	db *gorm.DB
}

func NewGormRatingRepository(db *gorm.DB) *GormRatingRepository {
	return &GormRatingRepository{db: db}
}

// Add relies on the primary key to reject a second rating of the same order.
func (r *GormRatingRepository) Add(ctx context.Context, aggregate *rating.Rating) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := RatingDTO{
		OrderID:    aggregate.OrderID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),
		Score:      aggregate.Score(),
		Comment:    aggregate.Comment(),
		CreatedAt:  aggregate.CreatedAt(),
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return rating.ErrAlreadyRated
	}
	return nil
}

func (r *GormRatingRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*rating.Rating, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto RatingDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rating", orderID.String())
		}
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	return rating.RestoreRating(orderID, customerID, dto.Score, dto.Comment, dto.CreatedAt)
}
