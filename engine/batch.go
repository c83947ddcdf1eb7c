package engine

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/merchstat/scout/models"
)

// BatchResult pairs one input URL with its outcome.
type BatchResult struct {
	URL     string
	Product *models.Product
	Err     error
}

// ExtractBatch extracts several URLs with bounded concurrency. Each unit of
// work provisions (and closes) its own renderer session when needed, so
// concurrency directly bounds the number of live browser processes; size it
// to the host's CPU/memory budget. limiter, when non-nil, paces extraction
// starts across the whole batch.
//
// One failed URL never aborts the others; results are returned in input
// order with per-URL errors.
func (e *Engine) ExtractBatch(ctx context.Context, urls []string, concurrency int, limiter *rate.Limiter) []BatchResult {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]BatchResult, len(urls))
	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					results[i] = BatchResult{URL: u, Err: err}
					return nil
				}
			}
			p, err := e.Extract(ctx, u)
			results[i] = BatchResult{URL: u, Product: p, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
