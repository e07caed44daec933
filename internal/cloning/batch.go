package cloning

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Outcome is the result of one request of a batch, or why it failed.
type Outcome struct {
	Request Request
	Result  *Result
	Err     error
}

// RunBatch runs independent requests concurrently, at most the configured
// number at a time. A failed request doesn't stop the others; outcomes are
// returned in request order. The error is only set if ctx is done before
// every request finished.
func (s *Service) RunBatch(ctx context.Context, reqs []Request) ([]Outcome, error) {
	outcomes := make([]Outcome, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.conf.BatchConcurrency)
	for i := range reqs {
		i := i // per-iteration copy: go.mod targets go1.21, before loopvar semantics
		outcomes[i].Request = reqs[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return err
			}

			outcomes[i].Result, outcomes[i].Err = s.Run(ctx, reqs[i])
			err := outcomes[i].Err
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	return outcomes, err
}
