package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SolverMetrics instruments the iterative solvers of the evaluation core.
// It satisfies solver.Observer.
type SolverMetrics struct {
	iterations *prometheus.HistogramVec
	failures   *prometheus.CounterVec
}

// NewSolverMetrics creates the collectors and registers them on reg. A nil
// reg leaves them unregistered, which is handy in tests.
func NewSolverMetrics(reg prometheus.Registerer) (*SolverMetrics, error) {
	m := &SolverMetrics{
		iterations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "copula",
			Subsystem: "solver",
			Name:      "iterations",
			Help:      "Iterations used by a converged solver run.",
			Buckets:   prometheus.LinearBuckets(0, 10, 12),
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "copula",
			Subsystem: "solver",
			Name:      "failures_total",
			Help:      "Solver runs that did not converge.",
		}, []string{"operation"}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.iterations, m.failures} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *SolverMetrics) ObserveIterations(operation string, n int) {
	m.iterations.WithLabelValues(operation).Observe(float64(n))
}

func (m *SolverMetrics) ObserveFailure(operation string) {
	m.failures.WithLabelValues(operation).Inc()
}
