package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Minimalist Linen Blazer", "minimalist-linen-blazer"},
		{"ALL UPPER CASE", "all-upper-case"},
		{"  Raw Selvedge Denim  ", "raw-selvedge-denim"},
		{"Chelsea Boot in Suede!", "chelsea-boot-in-suede"},
		{"Tops & Tees", "tops-and-tees"},
		{"men's clothing", "men-s-clothing"},
		{"Café Crème", "cafe-creme"},
		{"Ürün Çeşitleri", "urun-cesitleri"},
		{"Kadın Giyim", "kadin-giyim"},
		{"Straße", "strasse"},
		{"a -- b", "a-b"},
		{"---", ""},
		{"", ""},
		{"Mens Casual Premium Slim Fit T-Shirts ", "mens-casual-premium-slim-fit-t-shirts"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	s := Generate("Oatmeal Cashmere Crewneck")
	assert.Equal(t, s, Generate(s))
}
