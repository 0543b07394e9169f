package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bazaarika/storefront-service/internal/catalog"
	"github.com/bazaarika/storefront-service/internal/catalog/dto"
	"github.com/bazaarika/storefront-service/internal/model"
)

type mockRepo struct {
	products map[string]*model.Product
	skus     map[string]string // sku -> product id
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		products: make(map[string]*model.Product),
		skus:     make(map[string]string),
	}
}

func (m *mockRepo) Create(_ context.Context, p *model.Product) error {
	m.products[p.ID] = p
	m.skus[p.SKU] = p.ID
	return nil
}

func (m *mockRepo) Update(_ context.Context, p *model.Product) error {
	for sku, id := range m.skus {
		if id == p.ID {
			delete(m.skus, sku)
		}
	}
	m.products[p.ID] = p
	m.skus[p.SKU] = p.ID
	return nil
}

func (m *mockRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	return m.products[id], nil
}

func (m *mockRepo) FindAll(_ context.Context, _ *dto.ProductFilters) ([]model.Product, int, error) {
	out := make([]model.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	delete(m.products, id)
	return nil
}

func (m *mockRepo) IsSKUUnique(_ context.Context, sku, excludeID string) (bool, error) {
	id, taken := m.skus[sku]
	return !taken || id == excludeID, nil
}

func createInput() *dto.CreateProductInput {
	return &dto.CreateProductInput{
		SKU:       "TEE-001",
		Name:      "Classic Tee",
		BasePrice: decimal.NewFromInt(999),
		Options: []dto.VariantOptionInput{
			{Name: "Size", Values: "S,M"},
			{Name: "Color", Values: "Red,Blue"},
		},
		Variants: []dto.VariantPriceInput{
			{Label: "S / Red", Price: decimal.NewFromInt(500), Stock: 10},
			{Label: "S / Blue", Price: decimal.NewFromInt(500), Stock: 5},
			{Label: "M / Red", Price: decimal.NewFromInt(550), Stock: 8},
			{Label: "M / Blue", Price: decimal.NewFromInt(550), Stock: 0},
		},
	}
}

func TestCreateProductGeneratesVariants(t *testing.T) {
	repo := newMockRepo()
	uc := NewCatalogUseCase(repo, nil, nil, zap.NewNop())

	p, err := uc.CreateProduct(context.Background(), createInput())
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.Len(t, p.Options, 2)
	require.Len(t, p.Variants, 4)

	assert.Equal(t, "S / Red", p.Variants[0].Label)
	require.True(t, p.Variants[0].Price.Valid)
	assert.True(t, p.Variants[0].Price.Decimal.Equal(decimal.NewFromInt(500)))
	require.NotNil(t, p.Variants[0].Stock)
	assert.Equal(t, 10, *p.Variants[0].Stock)

	stored, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Same(t, p, stored)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	repo := newMockRepo()
	uc := NewCatalogUseCase(repo, nil, nil, zap.NewNop())

	_, err := uc.CreateProduct(context.Background(), createInput())
	require.NoError(t, err)

	_, err = uc.CreateProduct(context.Background(), createInput())
	assert.ErrorIs(t, err, catalog.ErrSKUExists)
}

func TestCreateProductVariantValidation(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(*dto.CreateProductInput)
		expected error
	}{
		{
			"missing price for a generated label",
			func(in *dto.CreateProductInput) { in.Variants = in.Variants[:3] },
			catalog.ErrVariantPriceRequired,
		},
		{
			"negative price",
			func(in *dto.CreateProductInput) { in.Variants[0].Price = decimal.NewFromInt(-1) },
			catalog.ErrVariantPriceInvalid,
		},
		{
			"negative stock",
			func(in *dto.CreateProductInput) { in.Variants[0].Stock = -5 },
			catalog.ErrVariantStockInvalid,
		},
		{
			"label outside the generated set",
			func(in *dto.CreateProductInput) {
				in.Variants = append(in.Variants, dto.VariantPriceInput{
					Label: "XL / Red", Price: decimal.NewFromInt(600),
				})
			},
			catalog.ErrUnknownVariantLabel,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMockRepo()
			uc := NewCatalogUseCase(repo, nil, nil, zap.NewNop())

			in := createInput()
			tc.mutate(in)

			_, err := uc.CreateProduct(context.Background(), in)
			assert.ErrorIs(t, err, tc.expected)
			assert.Empty(t, repo.products, "nothing persisted on validation failure")
		})
	}
}

func TestCreateProductWithoutOptions(t *testing.T) {
	repo := newMockRepo()
	uc := NewCatalogUseCase(repo, nil, nil, zap.NewNop())

	in := createInput()
	in.Options = nil
	in.Variants = nil

	p, err := uc.CreateProduct(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, p.Variants)
}

func TestUpdateProductPreservesSurvivingVariantPrices(t *testing.T) {
	repo := newMockRepo()
	uc := NewCatalogUseCase(repo, nil, nil, zap.NewNop())

	created, err := uc.CreateProduct(context.Background(), createInput())
	require.NoError(t, err)

	// Color domain changes to Red,Green; only the new Green labels get
	// operator-entered prices, the surviving Red labels keep theirs.
	updated, err := uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{
		ID:        created.ID,
		SKU:       created.SKU,
		Name:      created.Name,
		BasePrice: created.BasePrice,
		IsActive:  true,
		Options: []dto.VariantOptionInput{
			{Name: "Size", Values: "S,M"},
			{Name: "Color", Values: "Red,Green"},
		},
		Variants: []dto.VariantPriceInput{
			{Label: "S / Green", Price: decimal.NewFromInt(520), Stock: 3},
			{Label: "M / Green", Price: decimal.NewFromInt(570), Stock: 3},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Variants, 4)

	byLabel := make(map[string]model.ProductVariant, len(updated.Variants))
	for _, v := range updated.Variants {
		byLabel[v.Label] = v
	}

	sRed, ok := byLabel["S / Red"]
	require.True(t, ok)
	assert.True(t, sRed.Price.Decimal.Equal(decimal.NewFromInt(500)))
	require.NotNil(t, sRed.Stock)
	assert.Equal(t, 10, *sRed.Stock)

	sGreen, ok := byLabel["S / Green"]
	require.True(t, ok)
	assert.True(t, sGreen.Price.Decimal.Equal(decimal.NewFromInt(520)))

	_, blue := byLabel["S / Blue"]
	assert.False(t, blue, "dropped values take their combinations with them")
}

func TestUpdateProductMissingPriceForNewLabel(t *testing.T) {
	repo := newMockRepo()
	uc := NewCatalogUseCase(repo, nil, nil, zap.NewNop())

	created, err := uc.CreateProduct(context.Background(), createInput())
	require.NoError(t, err)

	_, err = uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{
		ID:        created.ID,
		SKU:       created.SKU,
		Name:      created.Name,
		BasePrice: created.BasePrice,
		IsActive:  true,
		Options: []dto.VariantOptionInput{
			{Name: "Size", Values: "S,M"},
			{Name: "Color", Values: "Red,Green"},
		},
		// Green labels are new and never priced.
	})
	assert.ErrorIs(t, err, catalog.ErrVariantPriceRequired)
}

func TestUpdateProductUnknownID(t *testing.T) {
	uc := NewCatalogUseCase(newMockRepo(), nil, nil, zap.NewNop())

	_, err := uc.UpdateProduct(context.Background(), &dto.UpdateProductInput{ID: "ghost"})
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}
