// Package rating lets a customer score a delivered order.
//
// Ratings are a separate aggregate: creating one reads the order but never
// changes it.
package rating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/pkg/errs"
)

const (
	MinScore = 1
	MaxScore = 5

	maxCommentLength = 500
)

var (
	ErrRatingIsNotConstructed = errors.New("Rating must be created via NewRating constructor")
	// ErrAlreadyRated is returned when the order already carries a rating.
	ErrAlreadyRated = errors.New("order has already been rated")
	// ErrOrderNotDelivered is returned when rating an order before it is delivered.
	ErrOrderNotDelivered = errors.New("only delivered orders can be rated")
	// ErrNotOrderOwner is returned when someone other than the ordering customer rates.
	ErrNotOrderOwner = errors.New("only the customer who placed the order can rate it")
)

type Rating struct {
	orderID    kernel.UUID
	customerID kernel.UUID
	score      int
	comment    string
	createdAt  time.Time

	isConstructed bool
}

// NewRating checks the rating rules against the current state of o.
func NewRating(o *order.Order, by kernel.Actor, score int, comment string, at time.Time) (*Rating, error) {
	if err := errors.Join(o.Validate(), by.Validate()); err != nil {
		return nil, err
	}
	if !by.Is(kernel.RoleCustomer) || !o.IsOwnedBy(by.ID()) {
		return nil, ErrNotOrderOwner
	}
	if o.Status() != order.Delivered {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotDelivered, o.ID(), o.Status())
	}

	r := &Rating{
		orderID:       o.ID(),
		customerID:    by.ID(),
		createdAt:     at.UTC(),
		isConstructed: true,
	}
	if err := errors.Join(r.setScore(score), r.setComment(comment)); err != nil {
		return nil, err
	}
	return r, nil
}

// RestoreRating rebuilds a stored rating without re-checking the order.
func RestoreRating(orderID, customerID kernel.UUID, score int, comment string, createdAt time.Time) (*Rating, error) {
	r := &Rating{
		orderID:       orderID,
		customerID:    customerID,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}
	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
		r.setScore(score),
		r.setComment(comment),
	); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rating) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRatingIsNotConstructed
	}
	return nil
}

func (r *Rating) OrderID() kernel.UUID {
	return r.orderID
}

func (r *Rating) CustomerID() kernel.UUID {
	return r.customerID
}

func (r *Rating) Score() int {
	return r.score
}

func (r *Rating) Comment() string {
	return r.comment
}

func (r *Rating) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Rating) setScore(score int) error {
	if score < MinScore || score > MaxScore {
		return errs.NewValueIsOutOfRangeError("score", score, MinScore, MaxScore)
	}
	r.score = score
	return nil
}

func (r *Rating) setComment(comment string) error {
	comment = strings.TrimSpace(comment)
	if len([]rune(comment)) > maxCommentLength {
		return errs.NewValueIsOutOfRangeError("comment length", len([]rune(comment)), 0, maxCommentLength)
	}
	r.comment = comment
	return nil
}
