package commands_test

import (
	"context"
	"testing"
	"time"

	"foodorders/internal/core/application/usecases/commands"
	"foodorders/internal/core/domain/model/courier"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/model/rating"
	"foodorders/internal/core/ports"
	"foodorders/internal/pkg/eventbus"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderStore struct{ mock.Mock }

func (m *MockOrderStore) Create(ctx context.Context, params order.NewOrderParams) (*order.Order, error) {
	args := m.Called(ctx, params)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderStore) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderStore) ApplyStatus(
	ctx context.Context,
	id kernel.UUID,
	apply func(*order.Order) error,
) (*order.Order, error) {
	args := m.Called(ctx, id, apply)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

// applyingStore runs apply against a copy of current, like the real store.
type applyingStore struct {
	MockOrderStore
	current *order.Order
}

func (s *applyingStore) ApplyStatus(_ context.Context, _ kernel.UUID, apply func(*order.Order) error) (*order.Order, error) {
	working := s.current.Clone()
	if err := apply(working); err != nil {
		return nil, err
	}
	s.current = working
	return working.Clone(), nil
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, event eventbus.Event) {
	m.Called(ctx, event)
}

type staticActor struct {
	actor kernel.Actor
	err   error
}

func (s staticActor) CurrentActor(context.Context) (kernel.Actor, error) {
	return s.actor, s.err
}

type MockRatingRepository struct{ mock.Mock }

func (m *MockRatingRepository) Add(ctx context.Context, r *rating.Rating) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRatingRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*rating.Rating, error) {
	args := m.Called(ctx, orderID)
	if r := args.Get(0); r != nil {
		return r.(*rating.Rating), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRatingUoW struct{ mock.Mock }

func (m *MockRatingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockRatingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockRatingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRatingUoW) RatingRepository() ports.RatingRepository {
	args := m.Called()
	return args.Get(0).(ports.RatingRepository)
}

type MockRatingUoWFactory struct{ mock.Mock }

func (m *MockRatingUoWFactory) Create() commands.RatingUoW {
	args := m.Called()
	return args.Get(0).(commands.RatingUoW)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Save(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, orderID)
	if c := args.Get(0); c != nil {
		return c.(*courier.Courier), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCourierRepository) Remove(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockCourierRepository) GetAllMoving(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if cs := args.Get(0); cs != nil {
		return cs.([]*courier.Courier), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCourierUoW struct{ mock.Mock }

func (m *MockCourierUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCourierUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCourierUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCourierUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

type MockCourierUoWFactory struct{ mock.Mock }

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func burger(t *testing.T, qty int) order.Item {
	t.Helper()
	item, err := order.NewItem("product-01", "Burger", qty, kernel.MoneyFromInt(20))
	require.NoError(t, err)
	return item
}

func pendingOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), order.NewOrderParams{
		CustomerID: customerID,
		BusinessID: kernel.NewUUID(),
		Items:      []order.Item{burger(t, 2)},
		Total:      kernel.MoneyFromInt(40),
		Location:   "Av. Reforma 222",
	}, time.Now())
	require.NoError(t, err)
	return o
}
