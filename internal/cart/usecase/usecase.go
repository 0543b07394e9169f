package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bazaarika/storefront-service/internal/cart"
	"github.com/bazaarika/storefront-service/internal/cart/dto"
	"github.com/bazaarika/storefront-service/internal/catalog"
	"github.com/bazaarika/storefront-service/internal/model"
	"github.com/bazaarika/storefront-service/internal/pkg/logger"
	"github.com/bazaarika/storefront-service/internal/pricing"
	"github.com/bazaarika/storefront-service/internal/variant"
)

type cartUseCase struct {
	store       *cart.Store
	products    cart.ProductProvider
	stock       cart.StockProvider
	shippingFee decimal.Decimal
	logger      logger.ZapLogger
}

func NewCartUseCase(store *cart.Store, products cart.ProductProvider, stock cart.StockProvider, shippingFee decimal.Decimal, log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{
		store:       store,
		products:    products,
		stock:       stock,
		shippingFee: shippingFee,
		logger:      log,
	}
}

func (uc *cartUseCase) GetCart(ctx context.Context, sessionID string) (*dto.CartView, error) {
	return uc.view(sessionID), nil
}

func (uc *cartUseCase) AddItem(ctx context.Context, sessionID string, input *dto.AddItemInput) (*dto.CartView, error) {
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

	// An unresolved selection is not an error: the line falls back to the
	// base price, same as a product without variants.
	resolved := variant.Resolve(p.Options, input.Selection, p.Variants)
	quote := pricing.QuoteProduct(p, resolved)

	variantID := ""
	var stockVariant *string
	if resolved != nil {
		variantID = resolved.Label
		stockVariant = &resolved.Label
	}

	line := model.CartLine{
		ProductID:      p.ID,
		VariantID:      variantID,
		Name:           p.Name,
		UnitPrice:      quote.Price,
		CompareAtPrice: quote.CompareAtPrice,
		Quantity:       input.Quantity,
	}
	if p.Category != nil {
		line.Category = p.Category.Name
	}
	if p.ImageURL != nil {
		line.ImageURL = *p.ImageURL
	}

	// Checking stock against the cart and mutating the cart must be one
	// locked step, or two concurrent adds can both pass the check.
	if p.TrackInventory && uc.stock != nil {
		available, err := uc.stock.Available(ctx, p.ID, stockVariant)
		if err != nil {
			return nil, err
		}
		if err := uc.store.AddWithLimit(sessionID, line, available); err != nil {
			return nil, err
		}
		return uc.view(sessionID), nil
	}

	if err := uc.store.Add(sessionID, line); err != nil {
		return nil, err
	}
	return uc.view(sessionID), nil
}

func (uc *cartUseCase) UpdateItem(ctx context.Context, sessionID, lineKey string, quantity int) (*dto.CartView, error) {
	if err := uc.store.UpdateQuantity(sessionID, lineKey, quantity); err != nil {
		return nil, err
	}
	return uc.view(sessionID), nil
}

func (uc *cartUseCase) RemoveItem(ctx context.Context, sessionID, lineKey string) (*dto.CartView, error) {
	if err := uc.store.Remove(sessionID, lineKey); err != nil {
		return nil, err
	}
	return uc.view(sessionID), nil
}

func (uc *cartUseCase) view(sessionID string) *dto.CartView {
	lines := uc.store.Lines(sessionID)
	return &dto.CartView{
		Lines:  lines,
		Totals: pricing.CartTotals(lines, uc.shippingFee),
	}
}
