package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/merchstat/scout/models"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantPrice    float64
		wantCurrency string
	}{
		{"dollar with comma", "$1,299.99", 1299.99, "$"},
		{"prefixed code", "US $24.50", 24.50, "US $"},
		{"yen", "￥2,480", 2480, "￥"},
		{"euro suffix digits", "€19.90", 19.90, "€"},
		{"plain number keeps default currency", "45.00", 45.00, "USD"},
		{"thousands separators stripped", "₩1,234,567", 1234567, "₩"},
		{"whitespace around symbol", "  £ 9.99 ", 9.99, "£"},
		{"no digits leaves everything alone", "call for price", 0, "USD"},
		{"empty input", "", 0, "USD"},
		{"garbage magnitude", "$..,", 0, "$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.NewProduct("https://example.com/p/1")
			ParsePrice(tt.text, p)
			assert.Equal(t, tt.wantPrice, p.Price)
			assert.Equal(t, tt.wantCurrency, p.Currency)
		})
	}
}

func TestParsePrice_NeverNegative(t *testing.T) {
	p := models.NewProduct("https://example.com/p/1")
	ParsePrice("-$10.00", p)
	assert.GreaterOrEqual(t, p.Price, 0.0)
}
