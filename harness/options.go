// SPDX-License-Identifier: MIT

package harness

import (
	"math/rand"

	"go.uber.org/zap"
)

// DefaultErrorThreshold separates accurate reconstructions from failures.
const DefaultErrorThreshold = 1e-6

// Option configures a Harness.
type Option func(*options)

type options struct {
	seed      int64
	rng       *rand.Rand
	fixed     map[int]float64
	threshold float64
	name      string
	logger    *zap.Logger
	metrics   *Metrics
}

func defaultOptions() options {
	return options{
		seed:      DefaultSeed,
		threshold: DefaultErrorThreshold,
		logger:    zap.NewNop(),
	}
}

// WithSeed seeds the sampling source (0 ⇒ DefaultSeed). Run derives its
// worker streams from this seed.
func WithSeed(seed int64) Option {
	return func(o *options) {
		if seed == 0 {
			seed = DefaultSeed
		}
		o.seed = seed
	}
}

// WithSource makes Sample and RunTrial draw from rng instead of a source
// seeded by WithSeed. The harness serialises access to it.
//
// Run does not use rng: its worker streams always derive from the WithSeed
// value (DefaultSeed when unset). Pass WithSeed as well to vary batches.
func WithSource(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithFixed pins joints (0-based index → angle). Candidates may then omit
// the pinned joints.
func WithFixed(fixed map[int]float64) Option {
	return func(o *options) {
		o.fixed = make(map[int]float64, len(fixed))
		for k, v := range fixed {
			o.fixed[k] = v
		}
	}
}

// WithErrorThreshold sets the failure threshold used in Stats and logs.
func WithErrorThreshold(th float64) Option {
	return func(o *options) {
		if th > 0 {
			o.threshold = th
		}
	}
}

// WithName labels logs and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics enables Prometheus accounting.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}
