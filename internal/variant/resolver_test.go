package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarika/storefront-service/internal/model"
)

func TestResolve(t *testing.T) {
	options := sizeColorOptions("S,M,L", "Red,Blue")
	variants := Generate("p1", options, nil)

	testCases := []struct {
		name      string
		selection map[string]string
		expected  string
	}{
		{"full selection", map[string]string{"Size": "M", "Color": "Red"}, "M / Red"},
		{"values trimmed", map[string]string{"Size": " L ", "Color": "Blue "}, "L / Blue"},
		{"partial selection", map[string]string{"Size": "M"}, ""},
		{"blank value is missing", map[string]string{"Size": "M", "Color": "  "}, ""},
		{"unknown combination", map[string]string{"Size": "XL", "Color": "Red"}, ""},
		{"nil selection", nil, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resolved := Resolve(options, tc.selection, variants)
			if tc.expected == "" {
				assert.Nil(t, resolved)
				return
			}
			require.NotNil(t, resolved)
			assert.Equal(t, tc.expected, resolved.Label)
		})
	}
}

func TestResolveNoUsableOptions(t *testing.T) {
	options := []model.VariantOption{{Name: "", Values: "S,M"}}
	assert.Nil(t, Resolve(options, map[string]string{"Size": "S"}, nil))
	assert.Nil(t, Resolve(nil, map[string]string{"Size": "S"}, nil))
}

func TestResolveExtraSelectionKeysIgnored(t *testing.T) {
	options := sizeColorOptions("S,M", "Red,Blue")
	variants := Generate("p1", options, nil)

	resolved := Resolve(options, map[string]string{
		"Size":     "S",
		"Color":    "Red",
		"Material": "Cotton",
	}, variants)
	require.NotNil(t, resolved)
	assert.Equal(t, "S / Red", resolved.Label)
}
