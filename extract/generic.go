package extract

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/merchstat/scout/models"
	"github.com/merchstat/scout/platform"
)

// descriptionLimit caps generic descriptions; unknown storefronts often put
// the entire page text under a "description" container.
const descriptionLimit = 500

// candidates is a ranked list of selectors for one field, compiled once at
// package init. Candidates are tried in order and the first one yielding
// non-empty text wins; fields are independent, so different fields may be
// satisfied by different candidates.
type candidates []cascadia.Selector

func compileAll(selectors ...string) candidates {
	out := make(candidates, 0, len(selectors))
	for _, s := range selectors {
		out = append(out, cascadia.MustCompile(s))
	}
	return out
}

// Selector candidates observed across common storefront themes, most
// specific first.
var (
	nameCandidates = compileAll(
		"h1.product-title",
		"h1.product-name",
		"h1[itemprop=name]",
		".product-title",
		".product-name",
		"h1",
	)
	priceCandidates = compileAll(
		".product-price",
		".price-current",
		".current-price",
		"[itemprop=price]",
		".price",
	)
	imageCandidates = compileAll(
		"img.product-image",
		".product-image img",
		"img[itemprop=image]",
		".gallery-image img",
		".main-image img",
	)
	descriptionCandidates = compileAll(
		".product-description",
		"#description",
		"[itemprop=description]",
		".product-details",
		".description",
	)
)

func (c candidates) firstText(doc *goquery.Document) string {
	for _, sel := range c {
		if text := strings.TrimSpace(doc.FindMatcher(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func (c candidates) firstAttr(doc *goquery.Document, attr string) string {
	for _, sel := range c {
		if val, ok := doc.FindMatcher(sel).First().Attr(attr); ok {
			if val = strings.TrimSpace(val); val != "" {
				return val
			}
		}
	}
	return ""
}

// GenericExtractor is the fallback strategy for marketplaces without a
// dedicated extractor. It holds no state, so repeated extraction over the
// same document yields identical records. An empty name is a valid outcome;
// whether the record is useful is the caller's call.
type GenericExtractor struct{}

func (g *GenericExtractor) Extract(_ context.Context, doc *goquery.Document, url string) *models.Product {
	p := models.NewProduct(url)
	p.Platform = platform.Resolve(url)

	p.Name = nameCandidates.firstText(doc)
	if priceText := priceCandidates.firstText(doc); priceText != "" {
		ParsePrice(priceText, p)
	}
	p.ImageURL = imageCandidates.firstAttr(doc, "src")
	p.Description = clampText(descriptionCandidates.firstText(doc), descriptionLimit)

	return p
}
