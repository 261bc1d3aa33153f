// Package solver holds the bounded one-dimensional iterations used by the
// quantile and confidence-region computations. Every routine gives up with
// common.ErrorConvergenceFailure after the configured number of iterations.
package solver

import (
	"github.com/uyouii/copula-algorithms/config"
)

// Observer receives the outcome of each solver run.
type Observer interface {
	ObserveIterations(operation string, n int)
	ObserveFailure(operation string)
}

type nopObserver struct{}

func (nopObserver) ObserveIterations(string, int) {}
func (nopObserver) ObserveFailure(string)         {}

// Solver bundles tolerances, the iteration budget, and an observer.
type Solver struct {
	config.SolverSettings
	Operation string
	Observer  Observer
}

func New(settings config.SolverSettings, operation string, observer Observer) Solver {
	if observer == nil {
		observer = nopObserver{}
	}
	return Solver{SolverSettings: settings, Operation: operation, Observer: observer}
}

func (s Solver) observer() Observer {
	if s.Observer == nil {
		return nopObserver{}
	}
	return s.Observer
}
