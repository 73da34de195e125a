package ports

import (
	"context"

	"foodorders/internal/pkg/eventbus"
)

type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type EventSubscriber interface {
	Subscribe(name string, handler eventbus.Handler) eventbus.Subscription
	Unsubscribe(sub eventbus.Subscription)
}
