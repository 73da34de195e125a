package queries

import (
	"context"

	"foodorders/internal/core/ports"
)

type GetProductsQueryHandler struct {
	products ports.ProductRepository
}

func NewGetProductsQueryHandler(products ports.ProductRepository) GetProductsQueryHandler {
	return GetProductsQueryHandler{products: products}
}

func (h GetProductsQueryHandler) Handle(ctx context.Context, query GetProductsQuery) ([]GetProductsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	products, err := h.products.All(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]GetProductsQueryResponse, 0, len(products))
	for _, p := range products {
		result = append(result, GetProductsQueryResponse{
			ID:          p.ID(),
			Name:        p.Name(),
			Description: p.Description(),
			Price:       p.Price(),
		})
	}
	return result, nil
}
