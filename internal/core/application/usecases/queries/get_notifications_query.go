package queries

import (
	"errors"

	"foodorders/internal/pkg/errs"
	"foodorders/internal/pkg/guard"
)

const (
	DefaultNotificationsLimit = 50
	maxNotificationsLimit     = 200
)

var (
	ErrGetNotificationsQueryIsNotConstructed = errors.New(
		"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
	)
)

// GetNotificationsQuery reads the current actor's in-app inbox. A zero limit
// means DefaultNotificationsLimit.
type GetNotificationsQuery struct {
	limit int

	guard guard.ConstructorGuard
}

func NewGetNotificationsQuery(limit int) (GetNotificationsQuery, error) {
	if limit == 0 {
		limit = DefaultNotificationsLimit
	}
	if limit < 1 || limit > maxNotificationsLimit {
		return GetNotificationsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxNotificationsLimit)
	}
	return GetNotificationsQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

func (q GetNotificationsQuery) Limit() int {
	return q.limit
}
