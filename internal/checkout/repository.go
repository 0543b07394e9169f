package checkout

import (
	"context"

	"github.com/bazaarika/storefront-service/internal/model"
)

type Repository interface {
	// Create persists the order and its items in one transaction.
	Create(ctx context.Context, order *model.Order) error

	// FindByID returns the order with items loaded, or nil.
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindBySession(ctx context.Context, sessionID string, page, pageSize int) ([]model.Order, int, error)
}
