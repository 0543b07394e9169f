package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bazaarika/storefront-service/internal/inventory"
	"github.com/bazaarika/storefront-service/internal/inventory/dto"
	"github.com/bazaarika/storefront-service/internal/model"
	"github.com/bazaarika/storefront-service/internal/pkg/cache"
	"github.com/bazaarika/storefront-service/internal/pkg/logger"
)

var ErrInsufficientInventory = errors.New("insufficient inventory")

type inventoryUseCase struct {
	repo   inventory.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, cache *cache.RedisClient, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *inventoryUseCase) GetStock(ctx context.Context, productID string, variantID *string) (*model.Inventory, error) {
	inv, err := uc.repo.GetStock(ctx, productID, variantID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		// Zero object rather than nil; no row just means nothing counted yet.
		return &model.Inventory{
			ProductID: productID,
			VariantID: variantID,
			Quantity:  0,
		}, nil
	}
	return inv, nil
}

func (uc *inventoryUseCase) Available(ctx context.Context, productID string, variantID *string) (int, error) {
	inv, err := uc.GetStock(ctx, productID, variantID)
	if err != nil {
		return 0, err
	}
	return inv.Quantity, nil
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, page, pageSize int) ([]model.Inventory, int, error) {
	return uc.repo.FindAll(ctx, &dto.InventoryFilters{
		LowStock: true,
		Page:     page,
		PageSize: pageSize,
	})
}

func (uc *inventoryUseCase) AdjustInventory(ctx context.Context, input *dto.AdjustInventoryInput) (*model.Inventory, error) {
	// Serialize adjustments per product/variant across instances.
	lockKey := fmt.Sprintf("lock:inventory:%s", input.ProductID)
	if input.VariantID != nil {
		lockKey += ":" + *input.VariantID
	}

	lockValue := uuid.New().String()
	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire lock redis error", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return nil, errors.New("system busy, please try again later (lock)")
	}
	defer uc.cache.ReleaseLock(ctx, lockKey, lockValue)

	inv, err := uc.repo.GetStock(ctx, input.ProductID, input.VariantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if inv == nil {
		inv = &model.Inventory{
			ID:        uuid.New().String(),
			ProductID: input.ProductID,
			VariantID: input.VariantID,
			Quantity:  0,
			UpdatedAt: now,
		}
	}

	quantityBefore := inv.Quantity
	inv.Quantity += input.QuantityChange
	inv.UpdatedAt = now

	if inv.Quantity < 0 {
		return nil, ErrInsufficientInventory
	}

	var refID *string
	if input.ReferenceID != "" {
		refID = &input.ReferenceID
	}
	var refType *string
	if input.ReferenceType != "" {
		refType = &input.ReferenceType
	}

	movement := &model.InventoryMovement{
		ID:             uuid.New().String(),
		ProductID:      input.ProductID,
		VariantID:      input.VariantID,
		MovementType:   "adjustment",
		QuantityChange: input.QuantityChange,
		QuantityBefore: quantityBefore,
		QuantityAfter:  inv.Quantity,
		ReferenceType:  refType,
		ReferenceID:    refID,
		Notes:          input.Reason,
		CreatedAt:      now,
	}

	if err := uc.repo.AdjustStockWithMovement(ctx, inv, movement); err != nil {
		return nil, err
	}

	return inv, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}
