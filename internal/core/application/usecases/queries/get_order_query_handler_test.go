package queries_test

import (
	"testing"

	"foodorders/internal/core/application/usecases/queries"
	"foodorders/internal/core/domain/model/kernel"
	"foodorders/internal/core/domain/model/order"
	"foodorders/internal/core/domain/services"
	"foodorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery_RequiresID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	owner := newActor(t, kernel.RoleCustomer)

	tests := []struct {
		name    string
		actor   kernel.Actor
		wantErr error
		next    []order.Status
	}{
		{"owner", owner, nil, []order.Status{order.Cancelled}},
		{"business", newActor(t, kernel.RoleBusiness), nil, []order.Status{order.Preparing, order.Cancelled}},
		{"delivery", newActor(t, kernel.RoleDelivery), nil, []order.Status{}},
		{"other customer", newActor(t, kernel.RoleCustomer), errs.ErrObjectNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			o := newOrder(t, owner.ID())
			reader := new(MockOrderReader)
			reader.On("Get", ctx, o.ID()).Return(o, nil).Once()

			query, err := queries.NewGetOrderQuery(o.ID())
			require.NoError(t, err)

			h := queries.NewGetOrderQueryHandler(reader, staticActor{actor: tt.actor}, services.NewTransitionPolicy())
			got, err := h.Handle(ctx, query)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, order.Pending, got.Status)
			assert.Equal(t, tt.next, got.NextStatuses)
			require.Len(t, got.Items, 1)
			assert.Equal(t, "Papas Fritas", got.Items[0].Name)
		})
	}
}

func TestGetOrderQueryHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	reader := new(MockOrderReader)
	reader.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id)).Once()

	query, err := queries.NewGetOrderQuery(id)
	require.NoError(t, err)

	h := queries.NewGetOrderQueryHandler(reader, staticActor{actor: newActor(t, kernel.RoleBusiness)}, noAdvice{})
	_, err = h.Handle(ctx, query)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
