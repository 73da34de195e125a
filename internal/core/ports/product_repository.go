package ports

import (
	"context"

	"foodorders/internal/core/domain/model/catalog"
)

type ProductRepository interface {
	All(ctx context.Context) ([]*catalog.Product, error)
	Get(ctx context.Context, id string) (*catalog.Product, error)
}
