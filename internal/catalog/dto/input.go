package dto

import "github.com/shopspring/decimal"

type VariantOptionInput struct {
	Name   string `json:"name"`
	Values string `json:"values"` // comma-separated, free text
}

// VariantPriceInput carries the operator-entered price and stock for one
// generated combination, keyed by its label.
type VariantPriceInput struct {
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type CreateProductInput struct {
	CategoryID     string
	SKU            string
	Name           string
	Description    string
	BasePrice      decimal.Decimal
	CompareAtPrice *decimal.Decimal
	TrackInventory bool
	ImageURL       string
	Options        []VariantOptionInput
	Variants       []VariantPriceInput
}

type UpdateProductInput struct {
	ID             string
	CategoryID     string
	SKU            string
	Name           string
	Description    string
	BasePrice      decimal.Decimal
	CompareAtPrice *decimal.Decimal
	TrackInventory bool
	ImageURL       string
	IsActive       bool
	Options        []VariantOptionInput
	Variants       []VariantPriceInput
}
