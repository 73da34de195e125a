package memory

import (
	"context"

	"foodorders/internal/core/domain/model/catalog"
	"foodorders/internal/pkg/errs"
)

// ProductRepository serves a fixed menu.
type ProductRepository struct {
	products []*catalog.Product
}

func NewProductRepository(products []*catalog.Product) *ProductRepository {
	return &ProductRepository{products: products}
}

func (r *ProductRepository) All(_ context.Context) ([]*catalog.Product, error) {
	out := make([]*catalog.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *ProductRepository) Get(_ context.Context, id string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("product", id)
}
