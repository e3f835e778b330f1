package ports

import (
	"context"

	"github.com/baditaflorin/go_absorbing_walk/internal/core/domain"
)

// WalkSimulator defines the interface for running a single walk to absorption.
type WalkSimulator interface {
	// Walk runs one trajectory seeded by seed and returns the absorbing
	// boundary position it terminated at.
	Walk(ctx context.Context, seed int64) (int, error)
}

// AbsorptionEstimator defines the interface for Monte Carlo absorption
// probability estimation.
type AbsorptionEstimator interface {
	// Estimate returns the empirical probability of absorption at the lower
	// boundary for walks started at start.
	Estimate(ctx context.Context, start int) (domain.Result, error)

	// Distribution returns one estimate per integer starting position from
	// the lower to the upper boundary, ascending.
	Distribution(ctx context.Context) ([]float64, error)
}
