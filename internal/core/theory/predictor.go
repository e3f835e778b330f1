// Package theory computes closed-form absorption probabilities for a biased
// random walk with absorbing barriers at sites 1 and N. It is the reference
// oracle the Monte Carlo estimates are validated against and shares no code
// or state with the simulation packages.
package theory

import (
	"fmt"
	"math"

	"github.com/baditaflorin/go_absorbing_walk/internal/core/domain"
	"github.com/baditaflorin/go_absorbing_walk/internal/ports"
)

// Predictor computes theoretical absorption probability arrays.
type Predictor struct {
	logger ports.Logger
}

// NewPredictor creates a new theoretical predictor.
func NewPredictor(logger ports.Logger) *Predictor {
	return &Predictor{logger: logger}
}

// Asymmetric returns the finite-N absorption probabilities at site 1 for a
// walk with rightward bias, one entry per starting site j = 1..n:
//
//	p_j = (s^(j-1) - s^(n-1)) / (1 - s^(n-1))  with  s = (1-bias)/bias
//
// The formula degenerates at bias 0.5 (the ratio s hits 1 and the
// denominator vanishes); callers must use Symmetric for that case. Raw
// output can contain -0.0 at j = n; sign cleanup belongs to presentation.
func (p *Predictor) Asymmetric(bias float64, n int) ([]float64, error) {
	if bias <= 0 || bias > 1 {
		return nil, fmt.Errorf("%w: bias %v must lie in (0, 1]",
			domain.ErrInvalidParameter, bias)
	}
	if bias == 0.5 {
		return nil, fmt.Errorf("%w: bias 0.5 is degenerate here, use the symmetric formula",
			domain.ErrInvalidParameter)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 sites, got %d",
			domain.ErrInvalidParameter, n)
	}

	s := (1 - bias) / bias
	last := math.Pow(s, float64(n-1))

	pp := make([]float64, n)
	for j := 1; j <= n; j++ {
		pp[j-1] = (math.Pow(s, float64(j-1)) - last) / (1 - last)
	}

	p.logger.Debug("Computed asymmetric finite-N probabilities", "bias", bias, "sites", n)
	return pp, nil
}

// Symmetric returns the finite-N absorption probabilities at site 1 for the
// unbiased walk, one entry per starting site j = 1..n:
//
//	p_j = (n - j) / (n - 1)
func (p *Predictor) Symmetric(n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 sites, got %d",
			domain.ErrInvalidParameter, n)
	}

	pp := make([]float64, n)
	for j := 1; j <= n; j++ {
		pp[j-1] = float64(n-j) / float64(n-1)
	}

	p.logger.Debug("Computed symmetric finite-N probabilities", "sites", n)
	return pp, nil
}

// ThermodynamicLimit returns the large-N limit of the asymmetric formula,
// p_j = s^(j-1), evaluated for starting sites j = 1..n. The limit only
// exists for rightward bias above 0.5, where s < 1.
func (p *Predictor) ThermodynamicLimit(bias float64, n int) ([]float64, error) {
	if bias <= 0.5 || bias > 1 {
		return nil, fmt.Errorf("%w: bias %v must lie in (0.5, 1]",
			domain.ErrInvalidParameter, bias)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: need at least 1 site, got %d",
			domain.ErrInvalidParameter, n)
	}

	s := (1 - bias) / bias

	pp := make([]float64, n)
	for j := 1; j <= n; j++ {
		pp[j-1] = math.Pow(s, float64(j-1))
	}

	p.logger.Debug("Computed thermodynamic-limit probabilities", "bias", bias, "sites", n)
	return pp, nil
}
