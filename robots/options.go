// SPDX-License-Identifier: MIT

package robots

import (
	"math/rand"

	"github.com/katalvlaran/poekin/harness"
	"github.com/katalvlaran/poekin/solver"
	"go.uber.org/zap"
)

// Option configures a Setup.
type Option func(*options)

type options struct {
	solve     solver.Func
	logger    *zap.Logger
	rng       *rand.Rand
	seed      int64
	metrics   *harness.Metrics
	threshold float64
}

// WithSolver binds a solver that accepts full-robot target poses. It takes
// precedence over the descriptor's bundled solver. For robots with a fixed
// joint the candidates may omit it.
func WithSolver(f solver.Func) Option {
	return func(o *options) { o.solve = f }
}

// WithLogger routes debug dumps and harness logs to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSource draws random poses from rng.
func WithSource(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithSeed seeds the pose source when WithSource is not given.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithMetrics enables Prometheus accounting on the underlying harness.
func WithMetrics(m *harness.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithErrorThreshold overrides harness.DefaultErrorThreshold.
func WithErrorThreshold(th float64) Option {
	return func(o *options) { o.threshold = th }
}
