// Package variant expands operator-declared option sets into concrete
// product variants and resolves a shopper's selection back to one of them.
package variant

import (
	"strings"

	"github.com/bazaarika/storefront-service/internal/model"
)

// Separator joins option values into a variant label, e.g. "M / Red".
const Separator = " / "

// ParseValues splits an option's comma-separated domain into trimmed tokens.
// Empty tokens are dropped. Two raw tokens that trim to the same string
// collapse to one; the first occurrence keeps its position.
func ParseValues(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		v := strings.TrimSpace(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// usableOptions drops options with a blank name or a value list that yields
// no tokens. Declaration order is preserved.
func usableOptions(options []model.VariantOption) ([]model.VariantOption, [][]string) {
	kept := make([]model.VariantOption, 0, len(options))
	domains := make([][]string, 0, len(options))
	for _, opt := range options {
		if strings.TrimSpace(opt.Name) == "" {
			continue
		}
		values := ParseValues(opt.Values)
		if len(values) == 0 {
			continue
		}
		kept = append(kept, opt)
		domains = append(domains, values)
	}
	return kept, domains
}

// Generate expands options into the ordered Cartesian product of their
// values. The first option is the outer loop, so for Size "S,M" and Color
// "Red,Blue" the labels come out "S / Red", "S / Blue", "M / Red",
// "M / Blue". Price and stock are carried over from any prior variant whose
// label still exists; labels new in this run are left unset for the operator
// to fill in. Running Generate twice on the same input yields the same
// labels in the same order.
func Generate(productID string, options []model.VariantOption, prior []model.ProductVariant) []model.ProductVariant {
	kept, domains := usableOptions(options)
	if len(kept) == 0 {
		return nil
	}

	byLabel := make(map[string]model.ProductVariant, len(prior))
	for _, v := range prior {
		byLabel[v.Label] = v
	}

	combos := []model.ProductVariant{}
	for i, values := range domains {
		name := kept[i].Name
		if i == 0 {
			for _, v := range values {
				combos = append(combos, model.ProductVariant{
					ProductID:  productID,
					Label:      v,
					Attributes: model.VariantAttributes{name: v},
				})
			}
			continue
		}
		next := make([]model.ProductVariant, 0, len(combos)*len(values))
		for _, c := range combos {
			for _, v := range values {
				attrs := make(model.VariantAttributes, len(c.Attributes)+1)
				for k, av := range c.Attributes {
					attrs[k] = av
				}
				attrs[name] = v
				next = append(next, model.ProductVariant{
					ProductID:  productID,
					Label:      c.Label + Separator + v,
					Attributes: attrs,
				})
			}
		}
		combos = next
	}

	for i := range combos {
		if old, ok := byLabel[combos[i].Label]; ok {
			combos[i].Price = old.Price
			combos[i].Stock = old.Stock
		}
	}
	return combos
}
