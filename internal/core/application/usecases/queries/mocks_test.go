package queries_test

import (
	"context"
	"testing"
	"time"

	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/core/domain/model/courier"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderReader) ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, customerID)
	if os := args.Get(0); os != nil {
		return os.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderReader) ListByStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, statuses)
	if os := args.Get(0); os != nil {
		return os.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Save(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, orderID)
	if c := args.Get(0); c != nil {
		return c.(*courier.Courier), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCourierRepository) Remove(ctx context.Context, orderID kernel.UUID) error {
	return m.Called(ctx, orderID).Error(0)
}

func (m *MockCourierRepository) GetAllMoving(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if cs := args.Get(0); cs != nil {
		return cs.([]*courier.Courier), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) All(ctx context.Context) ([]*catalog.Product, error) {
	args := m.Called(ctx)
	if ps := args.Get(0); ps != nil {
		return ps.([]*catalog.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) Get(ctx context.Context, id string) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*catalog.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockInbox struct{ mock.Mock }

func (m *MockInbox) For(ctx context.Context, actor kernel.Actor, limit int) ([]ports.Notification, error) {
	args := m.Called(ctx, actor, limit)
	if ns := args.Get(0); ns != nil {
		return ns.([]ports.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

type staticActor struct {
	actor kernel.Actor
	err   error
}

func (s staticActor) CurrentActor(context.Context) (kernel.Actor, error) {
	return s.actor, s.err
}

type noAdvice struct{}

func (noAdvice) NextStatuses(*order.Order, kernel.Actor) []order.Status {
	return nil
}

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func newOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewItem("product-02", "Papas Fritas", 1, kernel.MoneyFromInt(8))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), order.NewOrderParams{
		CustomerID: customerID,
		BusinessID: kernel.NewUUID(),
		Items:      []order.Item{item},
		Total:      kernel.MoneyFromInt(8),
	}, time.Now())
	require.NoError(t, err)
	return o
}
