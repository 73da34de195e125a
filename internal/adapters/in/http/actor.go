package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"foodorders/internal/core/application/session"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

type actorKey struct{}

func WithActor(ctx context.Context, actor kernel.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFromContext(ctx context.Context) (kernel.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(kernel.Actor)
	return actor, ok
}

// RequestActors answers with the actor stored by ActorMiddleware and falls
// back to the shared session for requests that did not name one.
type RequestActors struct {
	fallback ports.ActorProvider
}

var _ ports.ActorProvider = RequestActors{}

func NewRequestActors(fallback ports.ActorProvider) RequestActors {
	return RequestActors{fallback: fallback}
}

func (p RequestActors) CurrentActor(ctx context.Context) (kernel.Actor, error) {
	if actor, ok := ActorFromContext(ctx); ok {
		return actor, nil
	}
	if p.fallback == nil {
		return kernel.Actor{}, ports.ErrNoActor
	}
	return p.fallback.CurrentActor(ctx)
}

// ActorMiddleware reads X-Actor-ID and X-Actor-Role. The id is a UUID or a
// demo handle such as "customer-123". A role alone selects that role's demo
// user.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawID := strings.TrimSpace(c.Request().Header.Get(HeaderActorID))
			rawRole := strings.TrimSpace(c.Request().Header.Get(HeaderActorRole))
			if rawID == "" && rawRole == "" {
				return next(c)
			}

			actor, err := parseActor(rawID, rawRole)
			if err != nil {
				return writeError(c, http.StatusUnauthorized, err.Error())
			}

			req := c.Request()
			c.SetRequest(req.WithContext(WithActor(req.Context(), actor)))
			return next(c)
		}
	}
}

func parseActor(rawID, rawRole string) (kernel.Actor, error) {
	var (
		user  session.User
		known bool
	)
	if rawID != "" {
		user, known = session.UserByHandle(rawID)
	}

	var role kernel.Role
	switch {
	case rawRole != "":
		parsed, err := kernel.ParseRole(rawRole)
		if err != nil {
			return kernel.Actor{}, errors.Join(ports.ErrNoActor, err)
		}
		role = parsed
	case known:
		role = user.Role
	default:
		return kernel.Actor{}, fmt.Errorf("%w: %s requires %s", ports.ErrNoActor, HeaderActorID, HeaderActorRole)
	}

	switch {
	case known:
		return kernel.NewActor(user.ID, role)
	case rawID != "":
		id, err := kernel.UUIDFromString(rawID)
		if err != nil {
			return kernel.Actor{}, errors.Join(ports.ErrNoActor, err)
		}
		return kernel.NewActor(id, role)
	}

	for _, u := range session.DemoUsers() {
		if u.Role == role {
			return u.Actor(), nil
		}
	}
	return kernel.Actor{}, fmt.Errorf("%w: no demo user for role %s", ports.ErrNoActor, role)
}
