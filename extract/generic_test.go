package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const genericFixture = `<html><body>
<h1 class="product-title">Ceramic Pour-Over Coffee Maker</h1>
<div class="price-current">€34.90</div>
<div class="product-image"><img src="https://cdn.coolstore.io/img/coffee.jpg"></div>
<div class="product-details">Hand-glazed ceramic dripper for slow brewing.</div>
</body></html>`

func TestGenericExtract(t *testing.T) {
	doc := parseDoc(t, genericFixture)
	url := "https://www.coolstore.io/products/coffee-maker"

	p := (&GenericExtractor{}).Extract(context.Background(), doc, url)

	assert.Equal(t, "Coolstore", p.Platform)
	assert.Equal(t, "Ceramic Pour-Over Coffee Maker", p.Name)
	assert.Equal(t, 34.90, p.Price)
	assert.Equal(t, "€", p.Currency)
	assert.Equal(t, "https://cdn.coolstore.io/img/coffee.jpg", p.ImageURL)
	assert.Equal(t, "Hand-glazed ceramic dripper for slow brewing.", p.Description)
}

// Fields are satisfied independently: the name comes from the bare <h1>
// fallback while the price comes from a higher-ranked candidate.
func TestGenericExtract_FieldsUseDifferentCandidates(t *testing.T) {
	const fixture = `<html><body>
<h1>Budget Widget</h1>
<span class="product-price">$3.99</span>
</body></html>`

	p := (&GenericExtractor{}).Extract(context.Background(), parseDoc(t, fixture), "https://shop.example.org/w/1")

	assert.Equal(t, "Budget Widget", p.Name)
	assert.Equal(t, 3.99, p.Price)
	assert.Empty(t, p.ImageURL)
}

func TestGenericExtract_DescriptionClampedTo500(t *testing.T) {
	long := strings.Repeat("很长的描述 ", 200) // well over 500 runes
	fixture := `<html><body><div class="product-description">` + long + `</div></body></html>`

	p := (&GenericExtractor{}).Extract(context.Background(), parseDoc(t, fixture), "https://store.example.com/p/2")

	assert.Equal(t, 500, len([]rune(p.Description)))
}

func TestGenericExtract_EmptyNameStillReturnsRecord(t *testing.T) {
	url := "https://blankstore.example.com/p/3"
	p := (&GenericExtractor{}).Extract(context.Background(), parseDoc(t, "<html><body></body></html>"), url)

	assert.NotNil(t, p)
	assert.Empty(t, p.Name)
	assert.Equal(t, url, p.URL)
	assert.Equal(t, "USD", p.Currency)
}

// The generic extractor holds no mutable state: two runs over the same
// static document must yield identical records.
func TestGenericExtract_Idempotent(t *testing.T) {
	doc := parseDoc(t, genericFixture)
	url := "https://www.coolstore.io/products/coffee-maker"
	g := &GenericExtractor{}

	first := g.Extract(context.Background(), doc, url)
	second := g.Extract(context.Background(), doc, url)

	assert.Equal(t, first, second)
}
