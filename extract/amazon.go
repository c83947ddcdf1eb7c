package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/merchstat/scout/models"
)

// Amazon extracts product fields from an Amazon listing. Amazon renders
// prices and the spec table client-side, so this extractor runs over
// browser-rendered documents.
type Amazon struct{}

func (a *Amazon) Extract(_ context.Context, doc *goquery.Document, url string) *models.Product {
	p := models.NewProduct(url)
	p.Platform = "Amazon"

	p.Name = selectionText(doc, "#productTitle")

	if priceText := selectionText(doc, ".a-price .a-offscreen"); priceText != "" {
		ParsePrice(priceText, p)
	}

	p.ImageURL = selectionAttr(doc, "#landingImage", "src")
	p.Description = selectionText(doc, "#productDescription")

	doc.Find("#productDetails_techSpec_section_1 tr").Each(func(_ int, row *goquery.Selection) {
		key := strings.TrimSpace(row.Find("th").First().Text())
		value := strings.TrimSpace(row.Find("td").First().Text())
		if key != "" && value != "" {
			p.Specifications[key] = value
		}
	})

	return p
}
