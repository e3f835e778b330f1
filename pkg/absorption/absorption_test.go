package absorption

import (
	"context"
	"errors"
	"io"
	"math"
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

func TestProbabilityBoundaries(t *testing.T) {
	est, err := New(
		WithLogger(quietLogger(t)),
		WithBounds(0, 10),
		WithBias(0.5),
		WithWalks(100),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	p, err := est.Probability(context.Background(), 0)
	if err != nil {
		t.Fatalf("Probability(0) failed: %v", err)
	}
	if p != 1.0 {
		t.Errorf("lower barrier start: probability = %v, want 1.0", p)
	}

	p, err = est.Probability(context.Background(), 10)
	if err != nil {
		t.Fatalf("Probability(10) failed: %v", err)
	}
	if p != 0.0 {
		t.Errorf("upper barrier start: probability = %v, want 0.0", p)
	}
}

func TestEstimateMatchesAcrossWorkerCounts(t *testing.T) {
	newEst := func(workers int) *Estimator {
		est, err := New(
			WithLogger(quietLogger(t)),
			WithBounds(1, 9),
			WithBias(0.65),
			WithWalks(300),
			WithWorkers(workers),
		)
		if err != nil {
			t.Fatalf("New(workers=%d) failed: %v", workers, err)
		}
		return est
	}

	seq, err := newEst(1).Estimate(context.Background(), 4)
	if err != nil {
		t.Fatalf("sequential Estimate failed: %v", err)
	}
	par, err := newEst(8).Estimate(context.Background(), 4)
	if err != nil {
		t.Fatalf("parallel Estimate failed: %v", err)
	}

	if seq.Probability != par.Probability || seq.Tally != par.Tally {
		t.Errorf("worker count changed the estimate: %+v vs %+v", seq, par)
	}
}

func TestBiasedDistributionLeansLeft(t *testing.T) {
	// A strong leftward drift should absorb nearly everything at the
	// lower barrier for interior starts.
	est, err := New(
		WithLogger(quietLogger(t)),
		WithBounds(0, 10),
		WithBias(0.1),
		WithWalks(200),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	dist, err := est.Distribution(context.Background())
	if err != nil {
		t.Fatalf("Distribution failed: %v", err)
	}
	if len(dist) != 11 {
		t.Fatalf("distribution has %d entries, want 11", len(dist))
	}
	if math.Abs(dist[1]-1) > 0.1 {
		t.Errorf("site 1 with strong leftward drift: probability = %v, want near 1", dist[1])
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	_, err := New(
		WithLogger(quietLogger(t)),
		WithBounds(5, 5),
	)
	if !errors.Is(err, domain.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}

	_, err = New(
		WithLogger(quietLogger(t)),
		WithWalks(-1),
	)
	if !errors.Is(err, domain.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}
