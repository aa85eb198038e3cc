package api

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds Batch when the caller passes no limit.
const DefaultBatchConcurrency = 10

// BatchRequest is one call inside a Batch.
type BatchRequest struct {
	Method   string
	Endpoint string
	Params   *Params
	Out      any
}

// Batch executes the requests concurrently with at most limit in flight.
// Individual failures do not stop the batch; the returned slice has one
// entry per request, nil for the calls that succeeded.
func (c *Client) Batch(ctx context.Context, limit int, reqs []BatchRequest) []error {
	errs := make([]error, len(reqs))
	if len(reqs) == 0 {
		return errs
	}
	if limit < 1 {
		limit = DefaultBatchConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range reqs {
		g.Go(func() error {
			req := &reqs[i]
			errs[i] = c.Call(ctx, req.Method, req.Endpoint, req.Params, req.Out)
			return nil // don't stop on individual errors
		})
	}

	_ = g.Wait() // individual errors live in errs
	return errs
}
