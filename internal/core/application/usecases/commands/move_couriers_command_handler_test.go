package commands_test

import (
	"errors"
	"testing"
	"time"

	"foodorders/internal/core/application/usecases/commands"
	"foodorders/internal/core/domain/model/courier"
	"foodorders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func movingCourier(t *testing.T, from, to kernel.Location) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), kernel.NewUUID(), from, to, time.Now())
	require.NoError(t, err)
	return c
}

func TestMoveCouriersCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	far := movingCourier(t, businessSpot, customerSpot)
	before := far.RemainingDistance()

	repo := new(MockCourierRepository)
	uow := new(MockCourierUoW)
	factory := new(MockCourierUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(repo).Once(),
		repo.On("GetAllMoving", ctx).Return([]*courier.Courier{far}, nil).Once(),
		repo.On("Save", ctx, far).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewMoveCouriersCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, commands.NewMoveCouriersCommand()))
	assert.InDelta(t, before*0.9, far.RemainingDistance(), 1e-9)
	assert.False(t, far.HasArrived())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestMoveCouriersCommandHandler_Handle_NothingMoving(t *testing.T) {
	ctx := t.Context()
	repo := new(MockCourierRepository)
	uow := new(MockCourierUoW)
	factory := new(MockCourierUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(repo).Once(),
		repo.On("GetAllMoving", ctx).Return([]*courier.Courier{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewMoveCouriersCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, commands.NewMoveCouriersCommand()))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestMoveCouriersCommandHandler_Handle_RepositoryError(t *testing.T) {
	ctx := t.Context()
	repo := new(MockCourierRepository)
	uow := new(MockCourierUoW)
	factory := new(MockCourierUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(repo).Once(),
		repo.On("GetAllMoving", ctx).Return(nil, errors.New("db error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewMoveCouriersCommandHandler(factory, nil)
	require.ErrorContains(t, h.Handle(ctx, commands.NewMoveCouriersCommand()), "db error")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestMoveCouriersCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	h := commands.NewMoveCouriersCommandHandler(new(MockCourierUoWFactory), nil)
	err := h.Handle(ctx, commands.MoveCouriersCommand{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be created via NewMoveCouriersCommand constructor")
}
