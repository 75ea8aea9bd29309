// SPDX-License-Identifier: MIT

package harness

import (
	"context"
	"runtime"

	"github.com/katalvlaran/poekin/kinematics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Run executes trials round trips on workers goroutines (workers <= 0 ⇒
// GOMAXPROCS) and aggregates them.
//
// Worker w draws from DeriveSource(seed, w), seed being the WithSeed value,
// and owns trials i ≡ w (mod workers). The shared source used by Sample,
// including one given by WithSource, is neither read nor advanced. Results are
// folded in trial order, so Stats are identical across runs with the same
// seed and worker count.
//
// Cancellation is checked between trials; the first error stops all workers.
func (h *Harness) Run(ctx context.Context, trials, workers int) (Stats, error) {
	if trials < 0 {
		trials = 0
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if trials < workers {
		workers = max(trials, 1)
	}

	results := make([]TrialResult, trials)
	g, ctx := errgroup.WithContext(ctx)
	n := h.model.Joints()
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			rng := DeriveSource(h.seed, uint64(w))
			for i := w; i < trials; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				res, err := h.Trial(SampleConfiguration(rng, n, h.fixed))
				if err != nil {
					return err
				}
				// Drop bulky per-trial state; Stats only needs the scores.
				res.Target, res.Candidates = kinematics.Pose{}, nil
				results[i] = res
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, harnessErrorf(opRun, err)
	}

	st := NewStats(h.threshold)
	for _, r := range results {
		st.Add(r)
	}
	h.log.Info("batch complete",
		zap.Int("trials", st.Trials),
		zap.Int("unsolved", st.Unsolved),
		zap.Int("failures", st.Failures),
		zap.Float64("max_error", st.MaxError))

	return st, nil
}
