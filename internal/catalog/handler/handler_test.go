package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bazaarika/storefront-service/internal/catalog/dto"
	"github.com/bazaarika/storefront-service/internal/model"
)

type mockUseCase struct {
	product *model.Product
}

func (m *mockUseCase) CreateProduct(_ context.Context, _ *dto.CreateProductInput) (*model.Product, error) {
	return nil, nil
}

func (m *mockUseCase) GetProduct(_ context.Context, id string) (*model.Product, error) {
	if m.product != nil && m.product.ID == id {
		return m.product, nil
	}
	return nil, nil
}

func (m *mockUseCase) ListProducts(_ context.Context, _ *dto.ProductFilters) ([]model.Product, int, error) {
	return nil, 0, nil
}

func (m *mockUseCase) UpdateProduct(_ context.Context, _ *dto.UpdateProductInput) (*model.Product, error) {
	return nil, nil
}

func (m *mockUseCase) DeleteProduct(_ context.Context, _ string) error {
	return nil
}

type detailResponse struct {
	Price           decimal.Decimal  `json:"price"`
	CompareAtPrice  *decimal.Decimal `json:"compare_at_price"`
	DiscountPercent int              `json:"discount_percent"`
	SelectedVariant string           `json:"selected_variant"`
}

func catalogProduct() *model.Product {
	return &model.Product{
		BaseModel: model.BaseModel{ID: "p1"},
		SKU:       "TEE-001",
		Name:      "Classic Tee",
		BasePrice: decimal.NewFromInt(750),
		CompareAtPrice: decimal.NullDecimal{
			Decimal: decimal.NewFromInt(1000),
			Valid:   true,
		},
		Options: []model.VariantOption{
			{Name: "Size", Values: "S,M"},
			{Name: "Color", Values: "Red,Blue"},
		},
		Variants: []model.ProductVariant{
			{ProductID: "p1", Label: "S / Red"},
			{ProductID: "p1", Label: "M / Red", Price: decimal.NullDecimal{Decimal: decimal.NewFromInt(899), Valid: true}},
		},
	}
}

func getProduct(t *testing.T, target string) detailResponse {
	t.Helper()

	r := chi.NewRouter()
	NewCatalogHandler(&mockUseCase{product: catalogProduct()}, zap.NewNop()).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var detail detailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	return detail
}

func TestGetProductQuotesBasePrice(t *testing.T) {
	detail := getProduct(t, "/products/p1")

	assert.True(t, detail.Price.Equal(decimal.NewFromInt(750)))
	require.NotNil(t, detail.CompareAtPrice)
	assert.True(t, detail.CompareAtPrice.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 25, detail.DiscountPercent)
	assert.Empty(t, detail.SelectedVariant)
}

func TestGetProductQuotesResolvedVariant(t *testing.T) {
	detail := getProduct(t, "/products/p1?Size=M&Color=Red")

	assert.True(t, detail.Price.Equal(decimal.NewFromInt(899)))
	assert.Nil(t, detail.CompareAtPrice, "variant pricing suppresses compare-at")
	assert.Zero(t, detail.DiscountPercent)
	assert.Equal(t, "M / Red", detail.SelectedVariant)
}

func TestGetProductPartialSelectionFallsBack(t *testing.T) {
	detail := getProduct(t, "/products/p1?Size=M")

	assert.True(t, detail.Price.Equal(decimal.NewFromInt(750)))
	assert.Equal(t, 25, detail.DiscountPercent)
	assert.Empty(t, detail.SelectedVariant)
}

func TestGetProductUnknown(t *testing.T) {
	r := chi.NewRouter()
	NewCatalogHandler(&mockUseCase{}, zap.NewNop()).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/products/ghost", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
