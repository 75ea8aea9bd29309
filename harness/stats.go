// SPDX-License-Identifier: MIT

package harness

import "fmt"

// Stats aggregates TrialResults.
type Stats struct {
	Trials      int // trials folded in
	Scored      int // trials with at least one candidate
	Unsolved    int // trials with no candidate
	Candidates  int // candidates over all trials
	Approximate int // approximate candidates over all trials

	MaxError  float64 // over scored trials
	MeanError float64 // over scored trials

	Threshold           float64
	Failures            int // scored trials with MinError > Threshold
	ApproximateFailures int // failures whose best candidate was approximate
	ExactFailures       int // failures whose best candidate claimed exactness

	sum float64
}

// NewStats returns empty Stats with the given failure threshold.
func NewStats(threshold float64) Stats {
	return Stats{Threshold: threshold}
}

// Add folds r into s.
func (s *Stats) Add(r TrialResult) {
	s.Trials++
	s.Candidates += r.Total
	s.Approximate += r.Approximate
	if !r.Scoreable() {
		s.Unsolved++
		return
	}

	s.Scored++
	s.sum += r.MinError
	s.MeanError = s.sum / float64(s.Scored)
	if r.MinError > s.MaxError {
		s.MaxError = r.MinError
	}
	if r.Failed(s.Threshold) {
		s.Failures++
		if r.BestApproximate {
			s.ApproximateFailures++
		} else {
			s.ExactFailures++
		}
	}
}

// Merge folds o into s. Mean is recomputed from the running sums.
func (s *Stats) Merge(o Stats) {
	s.Trials += o.Trials
	s.Scored += o.Scored
	s.Unsolved += o.Unsolved
	s.Candidates += o.Candidates
	s.Approximate += o.Approximate
	s.Failures += o.Failures
	s.ApproximateFailures += o.ApproximateFailures
	s.ExactFailures += o.ExactFailures
	s.sum += o.sum
	if o.MaxError > s.MaxError {
		s.MaxError = o.MaxError
	}
	if s.Scored > 0 {
		s.MeanError = s.sum / float64(s.Scored)
	}
}

// String renders a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("trials=%d scored=%d unsolved=%d candidates=%d approximate=%d max=%.3g mean=%.3g failures=%d (approx=%d exact=%d)",
		s.Trials, s.Scored, s.Unsolved, s.Candidates, s.Approximate,
		s.MaxError, s.MeanError, s.Failures, s.ApproximateFailures, s.ExactFailures)
}
