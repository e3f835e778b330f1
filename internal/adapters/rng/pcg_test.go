package rng

import (
	"testing"
)

func TestStreamsAreDeterministic(t *testing.T) {
	factory := NewPCGFactory()

	a := factory.Stream(42)
	b := factory.Stream(42)

	for i := 0; i < 100; i++ {
		va, vb := a.Float64(), b.Float64()
		if va != vb {
			t.Fatalf("draw %d: streams with the same seed diverged: %v vs %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d: value %v outside [0, 1)", i, va)
		}
	}
}

func TestStreamsWithDistinctSeedsDiverge(t *testing.T) {
	factory := NewPCGFactory()

	a := factory.Stream(1)
	b := factory.Stream(2)

	same := 0
	for i := 0; i < 100; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	if same == 100 {
		t.Errorf("streams with different seeds produced identical sequences")
	}
}
