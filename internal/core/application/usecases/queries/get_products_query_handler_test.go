package queries_test

import (
	"errors"
	"testing"

	"foodorders/internal/core/application/usecases/queries"
	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProductsQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	repo := new(MockProductRepository)
	repo.On("All", ctx).Return(catalog.DemoMenu(), nil).Once()

	h := queries.NewGetProductsQueryHandler(repo)
	got, err := h.Handle(ctx, queries.NewGetProductsQuery())
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "product-01", got[0].ID)
	assert.Equal(t, "Hamburguesa Clásica", got[0].Name)
	assert.True(t, got[0].Price.IsEqual(kernel.MoneyFromInt(20)))
	repo.AssertExpectations(t)
}

func TestGetProductsQueryHandler_Handle_RepositoryError(t *testing.T) {
	ctx := t.Context()
	repo := new(MockProductRepository)
	repo.On("All", ctx).Return(nil, errors.New("db error")).Once()

	h := queries.NewGetProductsQueryHandler(repo)
	_, err := h.Handle(ctx, queries.NewGetProductsQuery())
	require.EqualError(t, err, "db error")
}

func TestGetProductsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetProductsQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrGetProductsQueryIsNotConstructed)
}
