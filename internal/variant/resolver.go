package variant

import (
	"strings"

	"github.com/bazaarika/storefront-service/internal/model"
)

// Resolve maps a shopper's selection to the matching variant. The candidate
// label is built in option declaration order; a selection that is missing a
// value for any usable option resolves to nil (partial selections never
// resolve). A full selection whose label has no match also resolves to nil,
// which callers treat as "fall back to the base price", never as an error.
func Resolve(options []model.VariantOption, selection map[string]string, variants []model.ProductVariant) *model.ProductVariant {
	kept, _ := usableOptions(options)
	if len(kept) == 0 {
		return nil
	}

	parts := make([]string, 0, len(kept))
	for _, opt := range kept {
		v, ok := selection[opt.Name]
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		parts = append(parts, strings.TrimSpace(v))
	}

	label := strings.Join(parts, Separator)
	for i := range variants {
		if variants[i].Label == label {
			return &variants[i]
		}
	}
	return nil
}
