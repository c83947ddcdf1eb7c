package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/merchstat/scout/fetch"
	"github.com/merchstat/scout/models"
)

// EBay extracts product fields from an eBay listing. eBay pages are
// server-rendered, so plain HTTP fetching is enough. The item description
// lives in a separate iframe document, which is fetched through the same
// transport on demand.
type EBay struct {
	fetcher fetch.Fetcher
}

func (e *EBay) Extract(ctx context.Context, doc *goquery.Document, url string) *models.Product {
	p := models.NewProduct(url)
	p.Platform = "eBay"

	p.Name = selectionText(doc, "h1.x-item-title__mainTitle")

	if priceText := selectionText(doc, ".x-price-primary .x-price-primary__content"); priceText != "" {
		ParsePrice(priceText, p)
	}

	p.ImageURL = selectionAttr(doc, ".ux-image-carousel-item img", "src")
	p.Description = e.fetchDescription(ctx, doc)

	// Labels and values are parallel node lists; zip them pairwise.
	labels := doc.Find(".ux-labels-values__labels-content")
	values := doc.Find(".ux-labels-values__values-content")
	n := labels.Length()
	if values.Length() < n {
		n = values.Length()
	}
	for i := 0; i < n; i++ {
		key := strings.TrimSpace(labels.Eq(i).Text())
		value := strings.TrimSpace(values.Eq(i).Text())
		if key != "" {
			p.Specifications[key] = value
		}
	}

	return p
}

// fetchDescription resolves the description iframe and fetches its document.
// Best-effort: any failure leaves the description empty.
func (e *EBay) fetchDescription(ctx context.Context, doc *goquery.Document) string {
	descURL, ok := doc.Find("#desc_ifr").First().Attr("src")
	if !ok || descURL == "" || e.fetcher == nil {
		return ""
	}

	html, err := e.fetcher.Fetch(ctx, descURL)
	if err != nil {
		slog.Debug("description iframe fetch failed", "url", descURL, "error", err)
		return ""
	}
	descDoc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(descDoc.Text())
}
