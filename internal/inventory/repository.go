package inventory

import (
	"context"

	"github.com/bazaarika/storefront-service/internal/inventory/dto"
	"github.com/bazaarika/storefront-service/internal/model"
)

type Repository interface {
	GetStock(ctx context.Context, productID string, variantID *string) (*model.Inventory, error)
	FindAll(ctx context.Context, filters *dto.InventoryFilters) ([]model.Inventory, int, error)

	// AdjustStockWithMovement writes the new stock level and its audit row
	// in one transaction.
	AdjustStockWithMovement(ctx context.Context, inv *model.Inventory, movement *model.InventoryMovement) error

	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}
