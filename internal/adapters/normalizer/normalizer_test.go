package normalizer

import (
	"math"
	"testing"
)

func TestSignNormalizerScrubsNegativeZero(t *testing.T) {
	n := NewSignNormalizer()

	in := []float64{1.0, 0.5, math.Copysign(0, -1), 0.25}
	out := n.Normalize(in)

	if len(out) != len(in) {
		t.Fatalf("length changed: %d -> %d", len(in), len(out))
	}
	if math.Signbit(out[2]) {
		t.Errorf("negative zero survived normalization: %v", out[2])
	}
	if out[0] != 1.0 || out[1] != 0.5 || out[3] != 0.25 {
		t.Errorf("nonzero values altered: %v", out)
	}
	if !math.Signbit(in[2]) {
		t.Errorf("input slice mutated")
	}
}

func TestClampNormalizer(t *testing.T) {
	n := NewClampNormalizer()

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "Below zero", in: -0.001, want: 0},
		{name: "Above one", in: 1.001, want: 1},
		{name: "Negative zero", in: math.Copysign(0, -1), want: 0},
		{name: "In range", in: 0.42, want: 0.42},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := n.Normalize([]float64{tc.in})
			if out[0] != tc.want || math.Signbit(out[0]) {
				t.Errorf("Normalize(%v) = %v, want %v", tc.in, out[0], tc.want)
			}
		})
	}
}

func TestNormalizerFactory(t *testing.T) {
	factory := NewNormalizerFactory()

	if _, ok := factory.CreateNormalizer(SignNormalizerType).(*SignNormalizer); !ok {
		t.Errorf("SignNormalizerType did not produce a SignNormalizer")
	}
	if _, ok := factory.CreateNormalizer(ClampNormalizerType).(*ClampNormalizer); !ok {
		t.Errorf("ClampNormalizerType did not produce a ClampNormalizer")
	}
}
