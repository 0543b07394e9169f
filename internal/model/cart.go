package model

import "github.com/shopspring/decimal"

// CartLine is one row in a session's cart. UnitPrice and CompareAtPrice are
// snapshots taken at add time; they are not re-resolved if the product or
// its variants change upstream.
type CartLine struct {
	ProductID      string              `json:"product_id"`
	VariantID      string              `json:"variant_id"` // Empty when the product has no variants
	Name           string              `json:"name"`
	Category       string              `json:"category"`
	ImageURL       string              `json:"image_url"`
	UnitPrice      decimal.Decimal     `json:"unit_price"`
	CompareAtPrice decimal.NullDecimal `json:"compare_at_price"`
	Quantity       int                 `json:"quantity"`
}

// Key identifies the line within a cart. Lines are separated per variant:
// adding a different variant of the same product creates a new line.
func (l CartLine) Key() string {
	return l.ProductID + "|" + l.VariantID
}
