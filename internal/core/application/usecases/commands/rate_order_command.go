package commands

import (
	"errors"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/rating"
	"foodorders/internal/pkg/errs"
	"foodorders/internal/pkg/guard"
)

var (
	ErrRateOrderCommandIsNotConstructed = errors.New(
		"RateOrderCommand must be created via NewRateOrderCommand constructor",
	)
)

type RateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	score   int
	comment string

	guard guard.ConstructorGuard
}

func NewRateOrderCommand(orderID kernel.UUID, score int, comment string) (RateOrderCommand, error) {
	cmd := RateOrderCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setScore(score),
	); err != nil {
		return RateOrderCommand{}, err
	}

	return cmd, nil
}

func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

func (c RateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RateOrderCommand) Score() int {
	return c.score
}

func (c RateOrderCommand) Comment() string {
	return c.comment
}

func (c *RateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	c.orderID = id
	return nil
}

func (c *RateOrderCommand) setScore(score int) error {
	if score < rating.MinScore || score > rating.MaxScore {
		return errs.NewValueIsOutOfRangeError("score", score, rating.MinScore, rating.MaxScore)
	}
	c.score = score
	return nil
}
