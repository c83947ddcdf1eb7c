package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubFetcher serves canned documents keyed by URL.
type stubFetcher struct {
	pages map[string]string
	calls []string
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	s.calls = append(s.calls, url)
	if html, ok := s.pages[url]; ok {
		return html, nil
	}
	return "", errors.New("no such page")
}

const ebayFixture = `<html><body>
<h1 class="x-item-title__mainTitle"><span>Vintage Camera Lens 50mm</span></h1>
<div class="x-price-primary"><span class="x-price-primary__content">US $89.00</span></div>
<div class="ux-image-carousel-item"><img src="https://i.ebayimg.com/images/g/lens.jpg"></div>
<iframe id="desc_ifr" src="https://itm.ebaydesc.com/itmdesc/55501"></iframe>
<div class="ux-labels-values__labels-content">Brand</div>
<div class="ux-labels-values__labels-content">Mount</div>
<div class="ux-labels-values__labels-content">Condition</div>
<div class="ux-labels-values__values-content">Canon</div>
<div class="ux-labels-values__values-content">EF</div>
</body></html>`

func TestEBayExtract(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://itm.ebaydesc.com/itmdesc/55501": `<html><body>Sharp prime lens, light fungus-free glass.</body></html>`,
	}}
	doc := parseDoc(t, ebayFixture)
	url := "https://www.ebay.com/itm/55501"

	p := (&EBay{fetcher: fetcher}).Extract(context.Background(), doc, url)

	assert.Equal(t, "eBay", p.Platform)
	assert.Equal(t, "Vintage Camera Lens 50mm", p.Name)
	assert.Equal(t, 89.00, p.Price)
	assert.Equal(t, "US $", p.Currency)
	assert.Equal(t, "https://i.ebayimg.com/images/g/lens.jpg", p.ImageURL)
	assert.Equal(t, "Sharp prime lens, light fungus-free glass.", p.Description)
	assert.Equal(t, []string{"https://itm.ebaydesc.com/itmdesc/55501"}, fetcher.calls)

	// Three labels, two values: pairs are zipped up to the shorter list.
	assert.Equal(t, map[string]string{
		"Brand": "Canon",
		"Mount": "EF",
	}, p.Specifications)
}

func TestEBayExtract_DescriptionFetchFailureIsNotFatal(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{}}
	doc := parseDoc(t, ebayFixture)

	p := (&EBay{fetcher: fetcher}).Extract(context.Background(), doc, "https://www.ebay.com/itm/55501")

	assert.Equal(t, "Vintage Camera Lens 50mm", p.Name)
	assert.Empty(t, p.Description)
}

func TestEBayExtract_NoIframeNoSecondaryFetch(t *testing.T) {
	fetcher := &stubFetcher{}
	doc := parseDoc(t, `<html><body><h1 class="x-item-title__mainTitle">Bare Item</h1></body></html>`)

	p := (&EBay{fetcher: fetcher}).Extract(context.Background(), doc, "https://www.ebay.com/itm/1")

	assert.Equal(t, "Bare Item", p.Name)
	assert.Empty(t, p.Description)
	assert.Empty(t, fetcher.calls)
}
