package store

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// MaxConcurrentFetches bounds the lookups FetchAll runs at once.
const MaxConcurrentFetches = 8

// FetchAll calls fetch for every id, at most MaxConcurrentFetches at a time, and returns the results
// keyed by id. The first error cancels the remaining lookups and is returned with no results.
func FetchAll[T any](ctx context.Context, ids []string, fetch func(ctx context.Context, id string) (T, error)) (map[string]T, error) {
	var (
		mu  sync.Mutex
		out = make(map[string]T, len(ids))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentFetches)
	for _, id := range ids {
		g.Go(func() error {
			v, err := fetch(gctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			out[id] = v
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
