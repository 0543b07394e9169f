package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bazaarika/storefront-service/internal/cart"
	"github.com/bazaarika/storefront-service/internal/catalog"
	"github.com/bazaarika/storefront-service/internal/checkout"
	"github.com/bazaarika/storefront-service/internal/checkout/dto"
	"github.com/bazaarika/storefront-service/internal/model"
	"github.com/bazaarika/storefront-service/internal/pkg/logger"
	"github.com/bazaarika/storefront-service/internal/pricing"
	"github.com/bazaarika/storefront-service/internal/variant"
)

type checkoutUseCase struct {
	repo        checkout.Repository
	store       *cart.Store
	products    cart.ProductProvider
	events      checkout.EventPublisher
	shippingFee decimal.Decimal
	logger      logger.ZapLogger
}

func NewCheckoutUseCase(repo checkout.Repository, store *cart.Store, products cart.ProductProvider, events checkout.EventPublisher, shippingFee decimal.Decimal, log logger.ZapLogger) checkout.UseCase {
	return &checkoutUseCase{
		repo:        repo,
		store:       store,
		products:    products,
		events:      events,
		shippingFee: shippingFee,
		logger:      log,
	}
}

func (uc *checkoutUseCase) PlaceOrder(ctx context.Context, sessionID string, input *dto.PlaceOrderInput) (*model.Order, error) {
	if input.PaymentMethod == "" {
		return nil, checkout.ErrPaymentMethodMissing
	}

	var lines []model.CartLine
	var err error
	if input.BuyNow != nil {
		lines, err = uc.buyNowLine(ctx, input.BuyNow)
		if err != nil {
			return nil, err
		}
	} else {
		lines = uc.store.Lines(sessionID)
	}
	if len(lines) == 0 {
		return nil, checkout.ErrEmptyOrder
	}

	totals := pricing.CartTotals(lines, uc.shippingFee)

	id := uuid.New().String()
	now := time.Now()

	order := &model.Order{
		BaseModel:     model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
		SessionID:     sessionID,
		PaymentMethod: input.PaymentMethod,
		Status:        model.OrderStatusPlaced,
		Subtotal:      totals.Subtotal,
		Shipping:      totals.Shipping,
		Total:         totals.Total,
	}

	for _, l := range lines {
		var variantID *string
		if l.VariantID != "" {
			v := l.VariantID
			variantID = &v
		}
		order.Items = append(order.Items, model.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   id,
			ProductID: l.ProductID,
			VariantID: variantID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: pricing.LineTotal(l.UnitPrice, l.Quantity),
			CreatedAt: now,
		})
	}

	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	uc.publishOrderCreated(ctx, order)

	// The buy-now bypass never touches the persistent cart.
	if input.BuyNow == nil {
		uc.store.Clear(sessionID)
	}

	return order, nil
}

// buyNowLine builds the single ad hoc line for the buy-now bypass, resolving
// the variant and snapshotting the price the same way a cart add would.
func (uc *checkoutUseCase) buyNowLine(ctx context.Context, input *dto.BuyNowInput) ([]model.CartLine, error) {
	if input.Quantity < 1 {
		return nil, cart.ErrInvalidQuantity
	}

	p, err := uc.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, catalog.ErrProductNotFound
	}

	resolved := variant.Resolve(p.Options, input.Selection, p.Variants)
	quote := pricing.QuoteProduct(p, resolved)

	line := model.CartLine{
		ProductID:      p.ID,
		Name:           p.Name,
		UnitPrice:      quote.Price,
		CompareAtPrice: quote.CompareAtPrice,
		Quantity:       input.Quantity,
	}
	if resolved != nil {
		line.VariantID = resolved.Label
	}
	if p.ImageURL != nil {
		line.ImageURL = *p.ImageURL
	}

	return []model.CartLine{line}, nil
}

func (uc *checkoutUseCase) publishOrderCreated(ctx context.Context, order *model.Order) {
	if uc.events == nil {
		return
	}

	type itemPayload struct {
		ProductID string  `json:"product_id"`
		VariantID *string `json:"variant_id"`
		Quantity  int     `json:"quantity"`
	}

	items := make([]itemPayload, len(order.Items))
	for i, it := range order.Items {
		items[i] = itemPayload{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		}
	}

	event := map[string]interface{}{
		"event_id":   uuid.New().String(),
		"event_type": "OrderCreated",
		"timestamp":  time.Now(),
		"payload": map[string]interface{}{
			"id":         order.ID,
			"session_id": order.SessionID,
			"items":      items,
		},
	}

	data, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("failed to marshal order event", zap.Error(err))
		return
	}

	// The order is already durable; a broker hiccup is logged, not surfaced
	// to the shopper.
	if err := uc.events.Publish(ctx, []byte(order.ID), data); err != nil {
		uc.logger.Error("failed to publish OrderCreated event",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
	}
}

func (uc *checkoutUseCase) GetOrder(ctx context.Context, sessionID, orderID string) (*model.Order, error) {
	order, err := uc.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.SessionID != sessionID {
		return nil, checkout.ErrOrderNotFound
	}
	return order, nil
}

func (uc *checkoutUseCase) ListOrders(ctx context.Context, sessionID string, page, pageSize int) ([]model.Order, int, error) {
	return uc.repo.FindBySession(ctx, sessionID, page, pageSize)
}
