// Package session holds the actor a single-user client is currently acting
// as. The demo app lets one person switch between the customer, business and
// delivery viewpoints without logging in again.
package session

import (
	"context"
	"fmt"
	"sync"

	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/ports"
)

// User is one of the fixed demo accounts.
type User struct {
	ID     kernel.UUID
	Handle string
	Name   string
	Email  string
	Role   kernel.Role
}

func (u User) Actor() kernel.Actor {
	a, err := kernel.NewActor(u.ID, u.Role)
	if err != nil {
		panic(fmt.Sprintf("demo user %s: %v", u.Handle, err))
	}
	return a
}

var (
	DemoCustomer = User{
		ID:     mustUUID("6f1c2a3e-0b7d-4c1a-9e55-000000000123"),
		Handle: "customer-123",
		Name:   "Demo Customer",
		Email:  "customer@example.com",
		Role:   kernel.RoleCustomer,
	}
	DemoBusiness = User{
		ID:     mustUUID("9a4e7b10-3c2f-4d8e-8b11-000000000123"),
		Handle: "business-123",
		Name:   "Demo Business",
		Email:  "business@example.com",
		Role:   kernel.RoleBusiness,
	}
	DemoDelivery = User{
		ID:     mustUUID("c3d5e8f2-7a61-4b09-a0c4-000000000123"),
		Handle: "delivery-123",
		Name:   "Demo Courier",
		Email:  "courier@example.com",
		Role:   kernel.RoleDelivery,
	}
)

// DemoUsers lists one user per role, customer first.
func DemoUsers() []User {
	return []User{DemoCustomer, DemoBusiness, DemoDelivery}
}

// UserByHandle resolves "customer-123" style ids used by the demo clients.
func UserByHandle(handle string) (User, bool) {
	for _, u := range DemoUsers() {
		if u.Handle == handle {
			return u, true
		}
	}
	return User{}, false
}

// Session is safe for concurrent use. Switching roles never touches orders.
type Session struct {
	mu      sync.RWMutex
	current User
	users   map[kernel.Role]User
}

var _ ports.ActorProvider = (*Session)(nil)

// New starts as the first user given, or as DemoCustomer when users is empty.
func New(users ...User) *Session {
	if len(users) == 0 {
		users = DemoUsers()
	}
	s := &Session{current: users[0], users: make(map[kernel.Role]User, len(users))}
	for _, u := range users {
		if _, ok := s.users[u.Role]; !ok {
			s.users[u.Role] = u
		}
	}
	return s
}

func (s *Session) Current() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Session) CurrentActor(_ context.Context) (kernel.Actor, error) {
	return s.Current().Actor(), nil
}

// SwitchRole makes the session act as the user registered for role.
func (s *Session) SwitchRole(role kernel.Role) (User, error) {
	if err := role.Validate(); err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[role]
	if !ok {
		return User{}, fmt.Errorf("%w: no user for role %s", ports.ErrNoActor, role)
	}
	s.current = u
	return u, nil
}

func mustUUID(s string) kernel.UUID {
	id, err := kernel.UUIDFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}
