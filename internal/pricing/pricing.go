// Package pricing derives display prices, discounts and order totals from a
// product, an optionally resolved variant and the cart contents. All amounts
// are decimals; rendering with a currency symbol is the caller's concern.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/bazaarika/storefront-service/internal/model"
)

// DefaultShippingFee is the flat shipping fee charged on any non-empty cart.
var DefaultShippingFee = decimal.NewFromInt(50)

// Quote is the price pair shown for a product detail view.
type Quote struct {
	Price          decimal.Decimal
	CompareAtPrice decimal.NullDecimal
}

// QuoteProduct returns the display price for a product with an optionally
// resolved variant. A resolved variant supplies its own price and suppresses
// the compare-at price (variant-level sale pricing is not modeled). An
// unresolved or price-less variant falls back to the base price.
func QuoteProduct(p *model.Product, resolved *model.ProductVariant) Quote {
	if resolved != nil && resolved.Price.Valid {
		return Quote{Price: resolved.Price.Decimal}
	}
	return Quote{Price: p.BasePrice, CompareAtPrice: p.CompareAtPrice}
}

// DiscountPercent is the rounded percentage saved against the compare-at
// price, 0 when there is no compare-at price or no actual saving.
// Rounding is half-up to the nearest integer.
func DiscountPercent(q Quote) int {
	if !q.CompareAtPrice.Valid {
		return 0
	}
	compare := q.CompareAtPrice.Decimal
	if compare.LessThanOrEqual(q.Price) || compare.IsZero() {
		return 0
	}
	pct := compare.Sub(q.Price).Div(compare).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

// LineTotal is unit price times quantity.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Totals is the order summary shown at checkout and stored on the order.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// CartTotals sums the cart lines and applies the flat shipping fee. An empty
// cart (zero subtotal) ships free because there is nothing to ship.
func CartTotals(lines []model.CartLine, shippingFee decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l.UnitPrice, l.Quantity))
	}
	shipping := decimal.Zero
	if subtotal.IsPositive() {
		shipping = shippingFee
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
