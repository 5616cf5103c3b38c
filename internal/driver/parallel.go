package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// AnalyzeAll runs Analyze for every request with at most jobs files in
// flight. jobs <= 0 takes GOMAXPROCS. Results keep the order of requests;
// the first fatal error cancels files that have not started yet, but every
// finished slot still carries its Result.
func AnalyzeAll(ctx context.Context, reqs []Request, jobs int, opts Options) ([]*Result, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(reqs) {
		jobs = len(reqs)
	}

	results := make([]*Result, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, req := range reqs {
		g.Go(func() error {
			r, err := Analyze(gctx, req, opts)
			results[i] = r
			return err
		})
	}
	err := g.Wait()
	return results, err
}
