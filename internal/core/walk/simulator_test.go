package walk

import (
	"context"
	"errors"
	"testing"

	"github.com/baditaflorin/go_absorbing_walk/internal/adapters/rng"
	"github.com/baditaflorin/go_absorbing_walk/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Close() error                                   { return nil }

func newTestSimulator(t *testing.T, config Config) *Simulator {
	t.Helper()
	sim, err := NewSimulator(config, nopLogger{}, rng.NewPCGFactory())
	if err != nil {
		t.Fatalf("NewSimulator(%+v) failed: %v", config, err)
	}
	return sim
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{
			name:   "Bounds inverted",
			config: Config{Start: 5, LowerBound: 10, UpperBound: 0, Bias: 0.5},
		},
		{
			name:   "Bounds equal",
			config: Config{Start: 3, LowerBound: 3, UpperBound: 3, Bias: 0.5},
		},
		{
			name:   "Start below lower bound",
			config: Config{Start: -1, LowerBound: 0, UpperBound: 10, Bias: 0.5},
		},
		{
			name:   "Start above upper bound",
			config: Config{Start: 11, LowerBound: 0, UpperBound: 10, Bias: 0.5},
		},
		{
			name:   "Bias negative",
			config: Config{Start: 5, LowerBound: 0, UpperBound: 10, Bias: -0.1},
		},
		{
			name:   "Bias above one",
			config: Config{Start: 5, LowerBound: 0, UpperBound: 10, Bias: 1.1},
		},
		{
			name:   "Negative step cap",
			config: Config{Start: 5, LowerBound: 0, UpperBound: 10, Bias: 0.5, MaxSteps: -1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSimulator(tc.config, nopLogger{}, rng.NewPCGFactory())
			if !errors.Is(err, domain.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestWalkDeterminism(t *testing.T) {
	sim := newTestSimulator(t, Config{Start: 5, LowerBound: 0, UpperBound: 10, Bias: 0.5})

	first, err := sim.Walk(context.Background(), 42)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if first != 0 && first != 10 {
		t.Fatalf("walk absorbed at %d, want 0 or 10", first)
	}

	for i := 0; i < 10; i++ {
		again, err := sim.Walk(context.Background(), 42)
		if err != nil {
			t.Fatalf("Walk failed: %v", err)
		}
		if again != first {
			t.Fatalf("seed 42 absorbed at %d on repeat, first run gave %d", again, first)
		}
	}
}

func TestWalkDistinctSeedsAreIndependent(t *testing.T) {
	sim := newTestSimulator(t, Config{Start: 5, LowerBound: 0, UpperBound: 10, Bias: 0.5})

	// With enough seeds both barriers must be reached for an unbiased
	// walk started in the middle.
	sawLower, sawUpper := false, false
	for seed := int64(0); seed < 100; seed++ {
		position, err := sim.Walk(context.Background(), seed)
		if err != nil {
			t.Fatalf("Walk(seed=%d) failed: %v", seed, err)
		}
		switch position {
		case 0:
			sawLower = true
		case 10:
			sawUpper = true
		default:
			t.Fatalf("walk absorbed off-barrier at %d", position)
		}
	}
	if !sawLower || !sawUpper {
		t.Errorf("expected both barriers to absorb: lower=%v upper=%v", sawLower, sawUpper)
	}
}

func TestWalkMonotonicBias(t *testing.T) {
	tests := []struct {
		name  string
		bias  float64
		start int
		want  int
	}{
		{name: "Bias one drifts right", bias: 1, start: 2, want: 10},
		{name: "Bias zero drifts left", bias: 0, start: 8, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sim := newTestSimulator(t, Config{Start: tc.start, LowerBound: 0, UpperBound: 10, Bias: tc.bias})
			position, err := sim.Walk(context.Background(), 1)
			if err != nil {
				t.Fatalf("Walk failed: %v", err)
			}
			if position != tc.want {
				t.Errorf("absorbed at %d, want %d", position, tc.want)
			}
		})
	}
}

func TestWalkStartOnBarrier(t *testing.T) {
	sim := newTestSimulator(t, Config{Start: 0, LowerBound: 0, UpperBound: 10, Bias: 0.5})
	position, err := sim.Walk(context.Background(), 7)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if position != 0 {
		t.Errorf("walk started on a barrier moved to %d", position)
	}
}

func TestWalkStepLimit(t *testing.T) {
	sim := newTestSimulator(t, Config{Start: 5, LowerBound: 0, UpperBound: 10, Bias: 0.5, MaxSteps: 1})
	_, err := sim.Walk(context.Background(), 0)
	if !errors.Is(err, domain.ErrStepLimit) {
		t.Errorf("expected ErrStepLimit, got %v", err)
	}
}

func TestWalkCancellation(t *testing.T) {
	sim := newTestSimulator(t, Config{Start: 5, LowerBound: 0, UpperBound: 10, Bias: 0.5})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Walk(ctx, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
