// Package fetch turns product-page URLs into raw HTML documents.
//
// Two interchangeable transports implement Fetcher: a stateless HTTP
// fetcher for server-rendered marketplaces, and a browser fetcher that
// owns a headless renderer for client-rendered ones.
package fetch

import (
	"context"
	"log/slog"
	"time"
)

// Fetcher retrieves the raw document for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// AcceptLanguage favors English with a Chinese fallback; cross-border
// listings often localize prices and specs based on it.
const AcceptLanguage = "en-US,en;q=0.9,zh-CN;q=0.8,zh;q=0.7"

// retryFetch runs op up to maxRetries times. Attempt n is followed by a
// wait of n times the backoff unit before the next try. onRetry runs after
// each backoff wait so a transport can reset state (e.g. relaunch a wedged
// renderer) before retrying. Every failed attempt is logged.
func retryFetch(ctx context.Context, url string, maxRetries int, backoff time.Duration, op func() (string, error), onRetry func()) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		html, err := op()
		if err == nil {
			return html, nil
		}
		lastErr = err
		slog.Warn("fetch attempt failed",
			"url", url,
			"attempt", attempt,
			"maxRetries", maxRetries,
			"error", err,
		)
		if attempt == maxRetries {
			break
		}

		wait := time.Duration(attempt) * backoff
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
		if onRetry != nil {
			onRetry()
		}
	}
	return "", lastErr
}
