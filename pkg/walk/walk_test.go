package walk

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/baditaflorin/go_absorbing_walk/internal/core/domain"
	"github.com/baditaflorin/l"
)

func quietLogger(t *testing.T) l.Logger {
	t.Helper()
	lg, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:     io.Discard,
		JsonFormat: false,
		AsyncWrite: false,
		BufferSize: 64 * 1024,
	})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return lg
}

func TestWalkReachesBarrier(t *testing.T) {
	w, err := New(WithLogger(quietLogger(t)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	position, err := w.Walk(context.Background(), 7)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if position != 0 && position != 10 {
		t.Errorf("absorbed at %d, want one of the barriers 0 or 10", position)
	}
}

func TestWalkSeedDeterminism(t *testing.T) {
	first, err := New(
		WithStart(3),
		WithBounds(0, 8),
		WithBias(0.6),
		WithLogger(quietLogger(t)),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	second, err := New(
		WithStart(3),
		WithBounds(0, 8),
		WithBias(0.6),
		WithLogger(quietLogger(t)),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for seed := int64(0); seed < 5; seed++ {
		a, err := first.Walk(context.Background(), seed)
		if err != nil {
			t.Fatalf("Walk failed: %v", err)
		}
		b, err := second.Walk(context.Background(), seed)
		if err != nil {
			t.Fatalf("Walk failed: %v", err)
		}
		if a != b {
			t.Errorf("seed %d: positions %d and %d, want identical replay", seed, a, b)
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []WalkerOption
	}{
		{"bias above one", []WalkerOption{WithBias(1.5)}},
		{"negative bias", []WalkerOption{WithBias(-0.1)}},
		{"inverted bounds", []WalkerOption{WithBounds(10, 0), WithStart(5)}},
		{"start outside bounds", []WalkerOption{WithBounds(0, 4), WithStart(9)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			opts := append([]WalkerOption{WithLogger(quietLogger(t))}, tc.opts...)
			if _, err := New(opts...); !errors.Is(err, domain.ErrInvalidParameter) {
				t.Errorf("New error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestWalkStepLimit(t *testing.T) {
	w, err := New(WithMaxSteps(1), WithLogger(quietLogger(t)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := w.Walk(context.Background(), 42); !errors.Is(err, domain.ErrStepLimit) {
		t.Errorf("Walk error = %v, want ErrStepLimit", err)
	}
}
