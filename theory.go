// theory.go
// Theoretical absorption probabilities for barriers at sites 1 and N,
// exposed on RandomWalk for convenience. These are pure closed-form
// results, never derived from simulated data; they exist as reference
// curves to validate the Monte Carlo estimates against.
package absorbingwalk

import (
	coretheory "github.com/baditaflorin/go_absorbing_walk/internal/core/theory"
)

// TheoreticalAsymmetric returns the finite-N absorption probabilities at
// site 1 for a walk with the given rightward bias, one entry per starting
// site 1..n. Bias 0.5 is degenerate here; use TheoreticalSymmetric.
func (rw *RandomWalk) TheoreticalAsymmetric(bias float64, n int) ([]float64, error) {
	return coretheory.NewPredictor(rw.logger).Asymmetric(bias, n)
}

// TheoreticalSymmetric returns the finite-N absorption probabilities at
// site 1 for the unbiased walk, one entry per starting site 1..n.
func (rw *RandomWalk) TheoreticalSymmetric(n int) ([]float64, error) {
	return coretheory.NewPredictor(rw.logger).Symmetric(n)
}

// TheoreticalLimit returns the thermodynamic-limit probabilities for a
// walk with bias above 0.5, one entry per starting site 1..n.
func (rw *RandomWalk) TheoreticalLimit(bias float64, n int) ([]float64, error) {
	return coretheory.NewPredictor(rw.logger).ThermodynamicLimit(bias, n)
}
