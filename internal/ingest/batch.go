package ingest

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ReadFiles parses paths concurrently, at most limit at a time, and returns the
// results in argument order. The first failure cancels the remaining reads.
func ReadFiles(ctx context.Context, paths []string, limit int) ([]*Result, error) {
	out := make([]*Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := ReadFile(p)
			if err != nil {
				return fmt.Errorf("read %s: %w", p, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
