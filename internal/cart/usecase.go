package cart

import (
	"context"

	"github.com/bazaarika/storefront-service/internal/cart/dto"
	"github.com/bazaarika/storefront-service/internal/model"
)

type UseCase interface {
	GetCart(ctx context.Context, sessionID string) (*dto.CartView, error)
	AddItem(ctx context.Context, sessionID string, input *dto.AddItemInput) (*dto.CartView, error)
	UpdateItem(ctx context.Context, sessionID, lineKey string, quantity int) (*dto.CartView, error)
	RemoveItem(ctx context.Context, sessionID, lineKey string) (*dto.CartView, error)
}

// ProductProvider is the slice of the catalog repository the cart needs.
type ProductProvider interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

// StockProvider reports available stock for a product or variant. Used only
// for products that track inventory.
type StockProvider interface {
	Available(ctx context.Context, productID string, variantID *string) (int, error)
}
