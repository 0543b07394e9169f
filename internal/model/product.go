package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	CategoryID     *string             `db:"category_id" json:"category_id"` // Nullable
	SKU            string              `db:"sku" json:"sku"`
	Name           string              `db:"name" json:"name"`
	Description    *string             `db:"description" json:"description"`
	BasePrice      decimal.Decimal     `db:"base_price" json:"base_price"`
	CompareAtPrice decimal.NullDecimal `db:"compare_at_price" json:"compare_at_price"`
	TrackInventory bool                `db:"track_inventory" json:"track_inventory"`
	ImageURL       *string             `db:"image_url" json:"image_url"`
	IsActive       bool                `db:"is_active" json:"is_active"`
	Options        []VariantOption     `db:"-" json:"options"`  // Joined data
	Variants       []ProductVariant    `db:"-" json:"variants"` // Joined data
	Category       *Category           `db:"-" json:"category"` // Joined data
}

// VariantOption is one operator-declared axis of variation, e.g. name "Size"
// with values "S, M, L". Values is free text; tokens are split and trimmed
// by the variant generator, not here.
type VariantOption struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"product_id"`
	Name      string `db:"name" json:"name"`
	Values    string `db:"option_values" json:"values"`
	Position  int    `db:"position" json:"position"`
}

// ProductVariant is one concrete combination of option values. Label is both
// the display name and the uniqueness key within a product (e.g. "M / Red"):
// the ordered join of the selected values with " / ".
type ProductVariant struct {
	ProductID  string              `db:"product_id" json:"product_id"`
	Label      string              `db:"label" json:"label"`
	Attributes VariantAttributes   `db:"attributes" json:"attributes"`
	Price      decimal.NullDecimal `db:"price" json:"price"` // Invalid until the operator enters one
	Stock      *int                `db:"stock" json:"stock"` // Nullable until entered
	Position   int                 `db:"position" json:"-"`  // Generation order, for stable enumeration
}

// VariantAttributes maps option name to the chosen value. Stored as JSONB.
type VariantAttributes map[string]string

func (a VariantAttributes) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *VariantAttributes) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = VariantAttributes{}
		return nil
	default:
		return fmt.Errorf("unsupported type for VariantAttributes: %T", src)
	}
}
