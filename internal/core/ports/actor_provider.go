package ports

import (
	"context"
	"errors"

	"foodorders/internal/core/domain/model/kernel"
)

// ErrNoActor is returned when the caller's identity is unknown.
var ErrNoActor = errors.New("no current actor")

// ActorProvider answers who is acting right now. It is asked again on every
// operation; callers must not cache the answer.
type ActorProvider interface {
	CurrentActor(ctx context.Context) (kernel.Actor, error)
}
