package queries

import (
	"context"

	"foodorders/internal/core/ports"
)

type GetNotificationsQueryHandler struct {
	inbox  ports.NotificationInbox
	actors ports.ActorProvider
}

func NewGetNotificationsQueryHandler(inbox ports.NotificationInbox, actors ports.ActorProvider) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{inbox: inbox, actors: actors}
}

func (h GetNotificationsQueryHandler) Handle(ctx context.Context, query GetNotificationsQuery) ([]ports.Notification, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor, err := currentActor(ctx, h.actors)
	if err != nil {
		return nil, err
	}

	return h.inbox.For(ctx, actor, query.Limit())
}
