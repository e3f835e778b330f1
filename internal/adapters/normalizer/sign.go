package normalizer

import (
	"github.com/baditaflorin/go_absorbing_walk/internal/ports"
)

// SignNormalizer replaces negative zero with positive zero. The closed-form
// predictors can legitimately produce -0.0 (e.g. the last site of the finite
// asymmetric formula); the value is correct but reads wrong when printed.
type SignNormalizer struct{}

// NewSignNormalizer creates a new sign normalizer.
func NewSignNormalizer() ports.ValueNormalizer {
	return &SignNormalizer{}
}

// Normalize returns a copy of values with every -0.0 rewritten as 0.0.
func (n *SignNormalizer) Normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v == 0 {
			v = 0 // collapses -0.0
		}
		out[i] = v
	}
	return out
}
