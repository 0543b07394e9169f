package checkout

import (
	"context"
	"errors"

	"github.com/bazaarika/storefront-service/internal/checkout/dto"
	"github.com/bazaarika/storefront-service/internal/model"
)

var (
	ErrEmptyOrder           = errors.New("checkout: nothing to order")
	ErrPaymentMethodMissing = errors.New("checkout: payment method is required")
	ErrOrderNotFound        = errors.New("checkout: order not found")
)

type UseCase interface {
	PlaceOrder(ctx context.Context, sessionID string, input *dto.PlaceOrderInput) (*model.Order, error)
	GetOrder(ctx context.Context, sessionID, orderID string) (*model.Order, error)
	ListOrders(ctx context.Context, sessionID string, page, pageSize int) ([]model.Order, int, error)
}

// EventPublisher pushes order events to the broker. *broker.KafkaProducer
// satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, key, value []byte) error
}
