// SPDX-License-Identifier: MIT

package harness

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides Prometheus accounting for validation trials.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Trials                *prometheus.CounterVec
	Unsolved              *prometheus.CounterVec
	Candidates            *prometheus.CounterVec
	ApproximateCandidates *prometheus.CounterVec
	ExactHighError        *prometheus.CounterVec
	MinError              *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	robot := []string{"robot"}

	return &Metrics{
		Trials: f.NewCounterVec(prometheus.CounterOpts{
			Name: "poekin_trials_total",
			Help: "Round-trip validation trials run",
		}, robot),
		Unsolved: f.NewCounterVec(prometheus.CounterOpts{
			Name: "poekin_trials_unsolved_total",
			Help: "Trials for which the solver returned no candidate",
		}, robot),
		Candidates: f.NewCounterVec(prometheus.CounterOpts{
			Name: "poekin_candidates_total",
			Help: "Candidate joint vectors returned by solvers",
		}, robot),
		ApproximateCandidates: f.NewCounterVec(prometheus.CounterOpts{
			Name: "poekin_candidates_approximate_total",
			Help: "Candidates flagged as least-squares approximations",
		}, robot),
		ExactHighError: f.NewCounterVec(prometheus.CounterOpts{
			Name: "poekin_candidates_exact_high_error_total",
			Help: "Exact-flagged candidates whose reconstruction error exceeds the threshold",
		}, robot),
		MinError: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "poekin_trial_min_error",
			Help:    "Minimum reconstruction error per scoreable trial",
			Buckets: prometheus.ExponentialBuckets(1e-16, 10, 17), // 1e-16 … 1
		}, robot),
	}
}

func (m *Metrics) observe(robot string, r TrialResult) {
	if m == nil {
		return
	}
	m.Trials.WithLabelValues(robot).Inc()
	m.Candidates.WithLabelValues(robot).Add(float64(r.Total))
	m.ApproximateCandidates.WithLabelValues(robot).Add(float64(r.Approximate))
	if !r.Scoreable() {
		m.Unsolved.WithLabelValues(robot).Inc()
		return
	}
	m.MinError.WithLabelValues(robot).Observe(r.MinError)
}

func (m *Metrics) incExactHighError(robot string) {
	if m != nil {
		m.ExactHighError.WithLabelValues(robot).Inc()
	}
}
