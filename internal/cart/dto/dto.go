package dto

import (
	"github.com/bazaarika/storefront-service/internal/model"
	"github.com/bazaarika/storefront-service/internal/pricing"
)

type AddItemInput struct {
	ProductID string            `json:"product_id"`
	Selection map[string]string `json:"selection"` // option name -> chosen value
	Quantity  int               `json:"quantity"`
}

// CartView is what the storefront renders: the lines plus derived totals.
type CartView struct {
	Lines  []model.CartLine `json:"lines"`
	Totals pricing.Totals   `json:"totals"`
}
