// Package inbox keeps recent notifications in memory so the app can show them
// as in-app alerts.
package inbox

import (
	"context"
	"sync"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/ports"
)

const DefaultCapacity = 1000

// Inbox is both a ports.NotificationTransport and a ports.NotificationInbox.
// Once full, the oldest notification is dropped for each new one.
type Inbox struct {
	mu       sync.RWMutex
	capacity int
	items    []ports.Notification
}

func New(capacity int) *Inbox {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Inbox{capacity: capacity, items: make([]ports.Notification, 0, capacity)}
}

func (i *Inbox) Deliver(_ context.Context, n ports.Notification) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if len(i.items) == i.capacity {
		copy(i.items, i.items[1:])
		i.items = i.items[:len(i.items)-1]
	}
	i.items = append(i.items, n)
	return nil
}

func (i *Inbox) For(_ context.Context, actor kernel.Actor, limit int) ([]ports.Notification, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make([]ports.Notification, 0)
	for idx := len(i.items) - 1; idx >= 0 && (limit <= 0 || len(out) < limit); idx-- {
		if addressedTo(i.items[idx].Recipient, actor) {
			out = append(out, i.items[idx])
		}
	}
	return out, nil
}

func (i *Inbox) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.items)
}

func addressedTo(r ports.Recipient, actor kernel.Actor) bool {
	if !actor.Is(r.Role) {
		return false
	}
	return r.UserID == nil || r.UserID.IsEqual(actor.ID())
}
