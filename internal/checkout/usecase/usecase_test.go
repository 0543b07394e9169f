package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bazaarika/storefront-service/internal/cart"
	"github.com/bazaarika/storefront-service/internal/checkout"
	"github.com/bazaarika/storefront-service/internal/checkout/dto"
	"github.com/bazaarika/storefront-service/internal/model"
)

type mockOrderRepo struct {
	orders map[string]*model.Order
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*model.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *model.Order) error {
	m.orders[order.ID] = order
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id string) (*model.Order, error) {
	return m.orders[id], nil
}

func (m *mockOrderRepo) FindBySession(_ context.Context, sessionID string, _, _ int) ([]model.Order, int, error) {
	var out []model.Order
	for _, o := range m.orders {
		if o.SessionID == sessionID {
			out = append(out, *o)
		}
	}
	return out, len(out), nil
}

type mockPublisher struct {
	messages [][]byte
	err      error
}

func (m *mockPublisher) Publish(_ context.Context, _, value []byte) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, value)
	return nil
}

type mockProducts struct {
	products map[string]*model.Product
}

func (m *mockProducts) FindByID(_ context.Context, id string) (*model.Product, error) {
	return m.products[id], nil
}

func seedCart(t *testing.T, store *cart.Store, sessionID string) {
	t.Helper()
	require.NoError(t, store.Add(sessionID, model.CartLine{
		ProductID: "p1",
		VariantID: "M / Red",
		Name:      "Classic Tee",
		UnitPrice: decimal.NewFromInt(200),
		Quantity:  2,
	}))
	require.NoError(t, store.Add(sessionID, model.CartLine{
		ProductID: "p2",
		Name:      "Mug",
		UnitPrice: decimal.NewFromInt(150),
		Quantity:  1,
	}))
}

func buyNowProduct() *mockProducts {
	p := &model.Product{
		BaseModel: model.BaseModel{ID: "p1"},
		Name:      "Classic Tee",
		BasePrice: decimal.NewFromInt(999),
		Options: []model.VariantOption{
			{Name: "Size", Values: "S,M"},
		},
		Variants: []model.ProductVariant{
			{ProductID: "p1", Label: "S"},
			{ProductID: "p1", Label: "M", Price: decimal.NullDecimal{Decimal: decimal.NewFromInt(899), Valid: true}},
		},
	}
	return &mockProducts{products: map[string]*model.Product{"p1": p}}
}

func TestPlaceOrderFromCart(t *testing.T) {
	repo := newMockOrderRepo()
	store := cart.NewStore()
	publisher := &mockPublisher{}
	uc := NewCheckoutUseCase(repo, store, nil, publisher, decimal.NewFromInt(50), zap.NewNop())

	seedCart(t, store, "sess")

	order, err := uc.PlaceOrder(context.Background(), "sess", &dto.PlaceOrderInput{PaymentMethod: model.PaymentMethodCOD})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPlaced, order.Status)
	assert.Equal(t, "sess", order.SessionID)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(550)))
	assert.True(t, order.Shipping.Equal(decimal.NewFromInt(50)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(600)))

	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].LineTotal.Equal(decimal.NewFromInt(400)))
	require.NotNil(t, order.Items[0].VariantID)
	assert.Equal(t, "M / Red", *order.Items[0].VariantID)
	assert.Nil(t, order.Items[1].VariantID)

	assert.Contains(t, repo.orders, order.ID)
	assert.Empty(t, store.Lines("sess"), "cart clears after a normal checkout")
}

func TestPlaceOrderPublishesEvent(t *testing.T) {
	repo := newMockOrderRepo()
	store := cart.NewStore()
	publisher := &mockPublisher{}
	uc := NewCheckoutUseCase(repo, store, nil, publisher, decimal.NewFromInt(50), zap.NewNop())

	seedCart(t, store, "sess")

	order, err := uc.PlaceOrder(context.Background(), "sess", &dto.PlaceOrderInput{PaymentMethod: model.PaymentMethodCOD})
	require.NoError(t, err)

	require.Len(t, publisher.messages, 1)
	var event struct {
		EventType string `json:"event_type"`
		Payload   struct {
			ID    string `json:"id"`
			Items []struct {
				ProductID string `json:"product_id"`
				Quantity  int    `json:"quantity"`
			} `json:"items"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(publisher.messages[0], &event))
	assert.Equal(t, "OrderCreated", event.EventType)
	assert.Equal(t, order.ID, event.Payload.ID)
	require.Len(t, event.Payload.Items, 2)
	assert.Equal(t, "p1", event.Payload.Items[0].ProductID)
	assert.Equal(t, 2, event.Payload.Items[0].Quantity)
}

func TestPlaceOrderPublishFailureDoesNotFailOrder(t *testing.T) {
	repo := newMockOrderRepo()
	store := cart.NewStore()
	publisher := &mockPublisher{err: assert.AnError}
	uc := NewCheckoutUseCase(repo, store, nil, publisher, decimal.NewFromInt(50), zap.NewNop())

	seedCart(t, store, "sess")

	order, err := uc.PlaceOrder(context.Background(), "sess", &dto.PlaceOrderInput{PaymentMethod: model.PaymentMethodCOD})
	require.NoError(t, err)
	assert.Contains(t, repo.orders, order.ID)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	uc := NewCheckoutUseCase(newMockOrderRepo(), cart.NewStore(), nil, nil, decimal.NewFromInt(50), zap.NewNop())

	_, err := uc.PlaceOrder(context.Background(), "sess", &dto.PlaceOrderInput{PaymentMethod: model.PaymentMethodCOD})
	assert.ErrorIs(t, err, checkout.ErrEmptyOrder)
}

func TestPlaceOrderMissingPaymentMethod(t *testing.T) {
	store := cart.NewStore()
	uc := NewCheckoutUseCase(newMockOrderRepo(), store, nil, nil, decimal.NewFromInt(50), zap.NewNop())
	seedCart(t, store, "sess")

	_, err := uc.PlaceOrder(context.Background(), "sess", &dto.PlaceOrderInput{})
	assert.ErrorIs(t, err, checkout.ErrPaymentMethodMissing)
	assert.Len(t, store.Lines("sess"), 2, "cart untouched on a rejected order")
}

func TestPlaceOrderBuyNowBypassesCart(t *testing.T) {
	repo := newMockOrderRepo()
	store := cart.NewStore()
	uc := NewCheckoutUseCase(repo, store, buyNowProduct(), nil, decimal.NewFromInt(50), zap.NewNop())

	seedCart(t, store, "sess")

	order, err := uc.PlaceOrder(context.Background(), "sess", &dto.PlaceOrderInput{
		PaymentMethod: model.PaymentMethodCOD,
		BuyNow: &dto.BuyNowInput{
			ProductID: "p1",
			Selection: map[string]string{"Size": "M"},
			Quantity:  1,
		},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(899)))
	require.NotNil(t, order.Items[0].VariantID)
	assert.Equal(t, "M", *order.Items[0].VariantID)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(949)))

	assert.Len(t, store.Lines("sess"), 2, "buy-now leaves the persistent cart alone")
}

func TestPlaceOrderBuyNowUnpricedVariantFallsBack(t *testing.T) {
	uc := NewCheckoutUseCase(newMockOrderRepo(), cart.NewStore(), buyNowProduct(), nil, decimal.NewFromInt(50), zap.NewNop())

	order, err := uc.PlaceOrder(context.Background(), "sess", &dto.PlaceOrderInput{
		PaymentMethod: model.PaymentMethodCOD,
		BuyNow: &dto.BuyNowInput{
			ProductID: "p1",
			Selection: map[string]string{"Size": "S"},
			Quantity:  1,
		},
	})
	require.NoError(t, err)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(999)))
}

func TestGetOrderOwnership(t *testing.T) {
	repo := newMockOrderRepo()
	store := cart.NewStore()
	uc := NewCheckoutUseCase(repo, store, nil, nil, decimal.NewFromInt(50), zap.NewNop())

	seedCart(t, store, "sess")
	order, err := uc.PlaceOrder(context.Background(), "sess", &dto.PlaceOrderInput{PaymentMethod: model.PaymentMethodCOD})
	require.NoError(t, err)

	found, err := uc.GetOrder(context.Background(), "sess", order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = uc.GetOrder(context.Background(), "other-sess", order.ID)
	assert.ErrorIs(t, err, checkout.ErrOrderNotFound)

	_, err = uc.GetOrder(context.Background(), "sess", "ghost")
	assert.ErrorIs(t, err, checkout.ErrOrderNotFound)
}
