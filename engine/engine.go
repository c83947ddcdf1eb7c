// Package engine is the extraction entry point: it wires the platform
// resolver, transports, field extractors and classifier into a single
// Extract(url) operation.
package engine

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/merchstat/scout/classify"
	"github.com/merchstat/scout/config"
	"github.com/merchstat/scout/extract"
	"github.com/merchstat/scout/fetch"
	"github.com/merchstat/scout/models"
	"github.com/merchstat/scout/platform"
)

// browserSession is a fetcher owning a renderer process that must be closed.
type browserSession interface {
	fetch.Fetcher
	Close()
}

// Engine runs product extractions. Extractions are independent and may run
// concurrently: the engine holds only read-only configuration and a
// stateless HTTP fetcher. Browser sessions are provisioned per call and
// never shared.
type Engine struct {
	cfg  *config.Config
	http fetch.Fetcher

	// newBrowserSession builds the per-extraction renderer session.
	// Overridable so tests can observe session lifecycle.
	newBrowserSession func() browserSession
}

// New creates an Engine from the given configuration.
func New(cfg *config.Config) *Engine {
	return &Engine{
		cfg:  cfg,
		http: fetch.NewHTTPFetcher(cfg.Scraper),
		newBrowserSession: func() browserSession {
			return fetch.NewBrowserFetcher(cfg.Scraper, cfg.Browser)
		},
	}
}

// Extract fetches the product page at rawURL and returns the extracted
// record. On fetch failure no record is produced. Partial extraction is a
// success: missing fields keep their defaults and the caller decides
// whether the record is useful.
//
// If the selected extractor needs a renderer, its session is owned here and
// closed on every exit path.
func (e *Engine) Extract(ctx context.Context, rawURL string) (*models.Product, error) {
	if u, err := url.Parse(rawURL); err != nil || !u.IsAbs() {
		return nil, models.NewExtractError(models.ErrCodeInvalidInput, "not an absolute URL", err)
	}

	// The resolved label selects the transport/extractor pair; dedicated
	// extractors write their own canonical label into the record.
	label := platform.Resolve(rawURL)
	spec, dedicated := extract.ForPlatform(label)
	if !dedicated {
		spec = extract.Generic()
	}

	slog.Info("extracting product",
		"url", rawURL,
		"platform", label,
		"dedicated", dedicated,
		"browser", spec.NeedsBrowser,
	)

	var fetcher fetch.Fetcher
	if spec.NeedsBrowser {
		session := e.newBrowserSession()
		defer session.Close()
		fetcher = session
	} else {
		fetcher = e.http
	}

	html, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		slog.Error("fetch failed, no record produced", "url", rawURL, "error", err)
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, models.NewExtractError(models.ErrCodeFetchFailed, "failed to parse fetched document", err)
	}

	product := spec.New(fetcher).Extract(ctx, doc, rawURL)
	product.Category = classify.Categorize(product.Name, product.Description)

	slog.Info("product extracted",
		"url", rawURL,
		"platform", product.Platform,
		"category", product.Category,
		"name", product.Name != "",
	)
	return product, nil
}
