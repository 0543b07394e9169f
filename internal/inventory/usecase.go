package inventory

import (
	"context"

	"github.com/bazaarika/storefront-service/internal/inventory/dto"
	"github.com/bazaarika/storefront-service/internal/model"
)

type UseCase interface {
	GetStock(ctx context.Context, productID string, variantID *string) (*model.Inventory, error)
	Available(ctx context.Context, productID string, variantID *string) (int, error)
	ListLowStock(ctx context.Context, page, pageSize int) ([]model.Inventory, int, error)
	AdjustInventory(ctx context.Context, input *dto.AdjustInventoryInput) (*model.Inventory, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}
