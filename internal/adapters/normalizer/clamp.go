package normalizer

import (
	"github.com/baditaflorin/go_absorbing_walk/internal/ports"
)

// ClampNormalizer snaps values into [0, 1] and scrubs negative zero. Useful
// for consumers that feed probabilities into systems which reject values a
// rounding error outside the unit interval.
type ClampNormalizer struct{}

// NewClampNormalizer creates a new clamping normalizer.
func NewClampNormalizer() ports.ValueNormalizer {
	return &ClampNormalizer{}
}

// Normalize returns a copy of values clamped to the unit interval.
func (n *ClampNormalizer) Normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		switch {
		case v < 0:
			v = 0
		case v > 1:
			v = 1
		case v == 0:
			v = 0 // collapses -0.0
		}
		out[i] = v
	}
	return out
}

// NormalizerFactory creates the appropriate value normalizer.
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory.
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects a normalization strategy.
type NormalizerType int

const (
	// SignNormalizerType only rewrites negative zero.
	SignNormalizerType NormalizerType = iota
	// ClampNormalizerType additionally clamps into [0, 1].
	ClampNormalizerType
)

// CreateNormalizer creates a normalizer of the requested type.
func (f *NormalizerFactory) CreateNormalizer(t NormalizerType) ports.ValueNormalizer {
	switch t {
	case ClampNormalizerType:
		return NewClampNormalizer()
	default:
		return NewSignNormalizer()
	}
}
