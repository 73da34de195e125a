package commands_test

import (
	"errors"
	"testing"

	"foodorders/internal/core/application/usecases/commands"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/ports"
	"foodorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customer := newActor(t, kernel.RoleCustomer)
	businessID := kernel.NewUUID()
	created := pendingOrder(t, customer.ID())

	cmd, err := commands.NewCreateOrderCommand([]order.Item{burger(t, 2)}, kernel.MoneyFromInt(40), "Av. Reforma 222")
	require.NoError(t, err)

	store := new(MockOrderStore)
	publisher := new(MockPublisher)
	mock.InOrder(
		store.On("Create", ctx, mock.MatchedBy(func(p order.NewOrderParams) bool {
			return p.CustomerID.IsEqual(customer.ID()) &&
				p.BusinessID.IsEqual(businessID) &&
				p.Location == "Av. Reforma 222" &&
				len(p.Items) == 1
		})).Return(created, nil).Once(),
		publisher.On("Publish", ctx, mock.MatchedBy(func(e order.Created) bool {
			return e.Order.ID().IsEqual(created.ID())
		})).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(store, staticActor{actor: customer}, publisher, businessID)
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Pending, got.Status())
	store.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	store := new(MockOrderStore)
	publisher := new(MockPublisher)

	h := commands.NewCreateOrderCommandHandler(store, staticActor{}, publisher, kernel.NewUUID())
	_, err := h.Handle(ctx, commands.CreateOrderCommand{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be created via NewCreateOrderCommand constructor")
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_OnlyCustomers(t *testing.T) {
	for _, role := range []kernel.Role{kernel.RoleBusiness, kernel.RoleDelivery} {
		t.Run(role.String(), func(t *testing.T) {
			ctx := t.Context()
			cmd, err := commands.NewCreateOrderCommand([]order.Item{burger(t, 1)}, kernel.MoneyFromInt(20), "")
			require.NoError(t, err)

			store := new(MockOrderStore)
			publisher := new(MockPublisher)
			h := commands.NewCreateOrderCommandHandler(store, staticActor{actor: newActor(t, role)}, publisher, kernel.NewUUID())

			_, err = h.Handle(ctx, cmd)
			require.ErrorIs(t, err, order.ErrForbiddenRole)
			store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateOrderCommandHandler_Handle_NoActor(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand([]order.Item{burger(t, 1)}, kernel.MoneyFromInt(20), "")
	require.NoError(t, err)

	h := commands.NewCreateOrderCommandHandler(new(MockOrderStore), staticActor{err: ports.ErrNoActor}, new(MockPublisher), kernel.NewUUID())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, ports.ErrNoActor)
}

func TestCreateOrderCommandHandler_Handle_StoreRejectsTotal(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand([]order.Item{burger(t, 2)}, kernel.MoneyFromInt(35), "")
	require.NoError(t, err)

	store := new(MockOrderStore)
	store.On("Create", ctx, mock.Anything).
		Return(nil, errs.NewValueIsInvalidErrorWithCause("total", errors.New("does not match the items sum"))).Once()
	publisher := new(MockPublisher)

	h := commands.NewCreateOrderCommandHandler(store, staticActor{actor: newActor(t, kernel.RoleCustomer)}, publisher, kernel.NewUUID())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}
