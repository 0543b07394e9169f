package catalog

import (
	"context"

	"github.com/bazaarika/storefront-service/internal/catalog/dto"
	"github.com/bazaarika/storefront-service/internal/model"
)

type Repository interface {
	// Create and Update persist the product together with its options and
	// generated variants in one transaction.
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error

	// FindByID returns the product with options, variants and category
	// loaded, or nil when no row exists.
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Delete(ctx context.Context, id string) error

	IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error)
}
