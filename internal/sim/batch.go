package sim

import (
	"context"
	"sync"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/dynamo"
)

// Factory produces the per-rollout pieces of a closed loop. Controllers and
// integrators carry mutable state, so each rollout gets fresh ones; the
// system is shared and must be safe for concurrent reads.
type Factory struct {
	System        dynamo.System
	NewIntegrator func() dynamo.Integrator
	NewController func() (dynamo.Controller, error)
}

// Batch runs one rollout per initial condition in parallel. A failed
// rollout records its error in its own Result and never aborts the batch.
func (f Factory) Batch(ctx context.Context, x0s []dynamo.State, cfg Config) []*Result {
	results := make([]*Result, len(x0s))

	var wg sync.WaitGroup
	for i := range x0s {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			ctrl, err := f.NewController()
			if err != nil {
				results[i] = &Result{Err: err}
				return
			}
			runner := NewRunner(f.System, f.NewIntegrator(), ctrl)
			res, err := runner.Run(ctx, x0s[i], cfg)
			if res == nil {
				res = &Result{Err: err}
			} else if err != nil && res.Err == nil {
				res.Err = err
			}
			results[i] = res
		}(i)
	}
	wg.Wait()

	return results
}
