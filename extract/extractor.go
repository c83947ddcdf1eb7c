// Package extract turns fetched product documents into Product records.
//
// One extractor exists per well-known marketplace, plus a generic fallback
// driven by ranked candidate selectors. Extractors never fail on missing
// fields: whatever cannot be located keeps its type default.
package extract

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/merchstat/scout/fetch"
	"github.com/merchstat/scout/models"
)

// Extractor locates product fields in a parsed document.
type Extractor interface {
	Extract(ctx context.Context, doc *goquery.Document, url string) *models.Product
}

// Spec describes how to extract for one marketplace: which transport the
// extractor needs and how to build it. Dedicated extractors pin a transport
// because they know how the site renders; the generic one gets a browser,
// the safest default for unknown pages. Each extractor writes its own
// canonical platform label into the record.
type Spec struct {
	NeedsBrowser bool

	// New builds the extractor. The fetcher is the one the orchestrator
	// selected; extractors that need secondary fetches (eBay's description
	// iframe) reuse it.
	New func(f fetch.Fetcher) Extractor
}

var registry = map[string]Spec{
	"Amazon": {
		NeedsBrowser: true,
		New:          func(fetch.Fetcher) Extractor { return &Amazon{} },
	},
	"eBay": {
		NeedsBrowser: false,
		New:          func(f fetch.Fetcher) Extractor { return &EBay{fetcher: f} },
	},
	"AliExpress": {
		NeedsBrowser: true,
		New:          func(fetch.Fetcher) Extractor { return &AliExpress{} },
	},
}

// ForPlatform returns the extraction spec for a resolved platform label.
// The second return reports whether a dedicated extractor exists.
func ForPlatform(label string) (Spec, bool) {
	spec, ok := registry[label]
	return spec, ok
}

// Generic returns the fallback spec used for platforms without a dedicated
// extractor.
func Generic() Spec {
	return Spec{
		NeedsBrowser: true,
		New:          func(fetch.Fetcher) Extractor { return &GenericExtractor{} },
	}
}
