package catalog

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUExists       = errors.New("sku already exists")

	// Variant pricing is operator-entered. Silently zeroing bad input masks
	// data-entry mistakes, so it is rejected instead.
	ErrVariantPriceRequired = errors.New("every generated variant needs a price")
	ErrVariantPriceInvalid  = errors.New("variant price must not be negative")
	ErrVariantStockInvalid  = errors.New("variant stock must not be negative")
	ErrUnknownVariantLabel  = errors.New("variant label does not match any generated combination")
)
