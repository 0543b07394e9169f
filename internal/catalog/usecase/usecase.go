package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bazaarika/storefront-service/internal/catalog"
	"github.com/bazaarika/storefront-service/internal/catalog/dto"
	"github.com/bazaarika/storefront-service/internal/model"
	"github.com/bazaarika/storefront-service/internal/pkg/cache"
	"github.com/bazaarika/storefront-service/internal/pkg/logger"
	"github.com/bazaarika/storefront-service/internal/pkg/search"
	"github.com/bazaarika/storefront-service/internal/variant"
)

const productIndex = "products"

type catalogUseCase struct {
	repo   catalog.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger logger.ZapLogger
}

func NewCatalogUseCase(repo catalog.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

func (uc *catalogUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	unique, err := uc.repo.IsSKUUnique(ctx, input.SKU, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, catalog.ErrSKUExists
	}

	id := uuid.New().String()
	now := time.Now()

	p := &model.Product{
		BaseModel:      model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
		CategoryID:     optionalString(input.CategoryID),
		SKU:            input.SKU,
		Name:           input.Name,
		Description:    optionalString(input.Description),
		BasePrice:      input.BasePrice,
		CompareAtPrice: optionalDecimal(input.CompareAtPrice),
		TrackInventory: input.TrackInventory,
		ImageURL:       optionalString(input.ImageURL),
		IsActive:       true,
	}

	p.Options = buildOptions(id, input.Options)
	p.Variants, err = generateAndPrice(id, p.Options, nil, input.Variants)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *catalogUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, catalog.ErrProductNotFound
	}

	if p.SKU != input.SKU {
		unique, err := uc.repo.IsSKUUnique(ctx, input.SKU, p.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, catalog.ErrSKUExists
		}
	}

	prior := p.Variants

	p.SKU = input.SKU
	p.Name = input.Name
	p.Description = optionalString(input.Description)
	p.BasePrice = input.BasePrice
	p.CompareAtPrice = optionalDecimal(input.CompareAtPrice)
	p.TrackInventory = input.TrackInventory
	p.ImageURL = optionalString(input.ImageURL)
	p.IsActive = input.IsActive
	p.CategoryID = optionalString(input.CategoryID)
	p.UpdatedAt = time.Now()

	p.Options = buildOptions(p.ID, input.Options)
	p.Variants, err = generateAndPrice(p.ID, p.Options, prior, input.Variants)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateListCache(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func buildOptions(productID string, inputs []dto.VariantOptionInput) []model.VariantOption {
	options := make([]model.VariantOption, 0, len(inputs))
	for i, in := range inputs {
		options = append(options, model.VariantOption{
			ID:        uuid.New().String(),
			ProductID: productID,
			Name:      in.Name,
			Values:    in.Values,
			Position:  i,
		})
	}
	return options
}

// generateAndPrice regenerates combinations from the submitted options,
// carrying over stored price/stock for labels that survive, then applies the
// operator-entered values. Every generated label must end up priced; bad or
// missing entries are validation errors, never silently zeroed.
func generateAndPrice(productID string, options []model.VariantOption, prior []model.ProductVariant, entered []dto.VariantPriceInput) ([]model.ProductVariant, error) {
	generated := variant.Generate(productID, options, prior)
	if len(generated) == 0 {
		return nil, nil
	}

	byLabel := make(map[string]*model.ProductVariant, len(generated))
	for i := range generated {
		byLabel[generated[i].Label] = &generated[i]
	}

	for _, in := range entered {
		v, ok := byLabel[in.Label]
		if !ok {
			return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownVariantLabel, in.Label)
		}
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: %q", catalog.ErrVariantPriceInvalid, in.Label)
		}
		if in.Stock < 0 {
			return nil, fmt.Errorf("%w: %q", catalog.ErrVariantStockInvalid, in.Label)
		}
		v.Price = decimal.NullDecimal{Decimal: in.Price, Valid: true}
		stock := in.Stock
		v.Stock = &stock
	}

	for i := range generated {
		if !generated[i].Price.Valid {
			return nil, fmt.Errorf("%w: %q", catalog.ErrVariantPriceRequired, generated[i].Label)
		}
	}

	return generated, nil
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *catalogUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey, err := uc.generateCacheKey(filters)
	if err == nil && uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var result struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				return result.Products, result.Count, nil
			}
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"query_string": map[string]interface{}{
					"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
					"fields": []string{"name^3", "sku", "description"},
				},
			},
			"from": (filters.Page - 1) * filters.PageSize,
		}
		if filters.PageSize > 0 {
			q["size"] = filters.PageSize
		}

		res, err := uc.es.Search(ctx, productIndex, q)
		if err == nil {
			var esProducts []model.Product
			for _, hit := range res.Hits.Hits {
				var p model.Product
				if err := json.Unmarshal(hit.Source, &p); err == nil {
					esProducts = append(esProducts, p)
				}
			}
			return esProducts, res.Hits.Total.Value, nil
		}
		// ES down or unhappy: the DB ILIKE path still answers the query.
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" && uc.cache != nil {
		cacheData := struct {
			Products []model.Product
			Count    int
		}{
			Products: products,
			Count:    count,
		}
		if data, err := json.Marshal(cacheData); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return products, count, nil
}

func (uc *catalogUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return nil // Already deleted
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.invalidateListCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productIndex, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.Error(err))
			}
		}()
	}

	return nil
}

func (uc *catalogUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data)), nil
}

func (uc *catalogUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	keys, err := uc.cache.Client.Keys(ctx, "products:list:*").Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func (uc *catalogUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"name": { "type": "text" },
				"description": { "type": "text" },
				"sku": { "type": "keyword" },
				"base_price": { "type": "double" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, productIndex, mapping)

	if err := uc.es.Index(ctx, productIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
