// absorbing_walk.go
// Package absorbingwalk simulates one-dimensional biased random walks
// confined between two absorbing barriers and estimates absorption
// probabilities by Monte Carlo sampling. A walk starts at j with barriers
// at a < b and moves right with probability r each step until it reaches a
// barrier; the estimator runs n independent seeded walks and reports the
// fraction absorbed at the lower barrier.
//
// Every trajectory owns a deterministic random stream derived from its
// seed, so single walks and whole estimates reproduce exactly across calls,
// including under the parallel execution path.
package absorbingwalk

import (
	"context"
	"sync"

	"github.com/baditaflorin/go_absorbing_walk/internal/adapters/logger"
	"github.com/baditaflorin/go_absorbing_walk/internal/adapters/rng"
	coreabsorption "github.com/baditaflorin/go_absorbing_walk/internal/core/absorption"
	"github.com/baditaflorin/go_absorbing_walk/internal/core/domain"
	corewalk "github.com/baditaflorin/go_absorbing_walk/internal/core/walk"
	"github.com/baditaflorin/go_absorbing_walk/internal/ports"
	"github.com/baditaflorin/l"
)

// Sentinel errors, re-exported for callers outside the module.
var (
	ErrInvalidParameter = domain.ErrInvalidParameter
	ErrStepLimit        = domain.ErrStepLimit
)

// RandomWalk is the top-level entry point. Barriers, starts and biases are
// per-call parameters; the instance only carries execution concerns
// (logging, random streams, worker count, step cap).
type RandomWalk struct {
	logger   ports.Logger
	streams  ports.RandomStreamFactory
	workers  int
	maxSteps int
}

// Option defines a functional option for configuring RandomWalk.
type Option func(*RandomWalk)

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(rw *RandomWalk) {
		rw.logger = logger.FromExisting(lg)
	}
}

// WithStreamFactory sets a custom random stream factory.
func WithStreamFactory(streams ports.RandomStreamFactory) Option {
	return func(rw *RandomWalk) {
		rw.streams = streams
	}
}

// WithWorkers sets the number of concurrent trajectory workers used by
// estimates. Values below 2 keep estimation sequential.
func WithWorkers(workers int) Option {
	return func(rw *RandomWalk) {
		rw.workers = workers
	}
}

// WithMaxSteps caps the number of steps per walk (0 = no cap).
func WithMaxSteps(maxSteps int) Option {
	return func(rw *RandomWalk) {
		rw.maxSteps = maxSteps
	}
}

// New creates a new RandomWalk instance.
// If no logger is provided, a default logger is created.
func New(opts ...Option) (*RandomWalk, error) {
	rw := &RandomWalk{}

	for _, opt := range opts {
		opt(rw)
	}

	if rw.logger == nil {
		lg, err := createDefaultLogger()
		if err != nil {
			return nil, err
		}
		rw.logger = logger.FromExisting(lg)
	}

	if rw.streams == nil {
		rw.streams = rng.NewPCGFactory()
	}

	return rw, nil
}

// Walk runs one random walk from start with barriers at lower and upper,
// rightward bias bias, seeded by seed, and returns the barrier position it
// was absorbed at.
func (rw *RandomWalk) Walk(ctx context.Context, start, lower, upper int, bias float64, seed int64) (int, error) {
	sim, err := corewalk.NewSimulator(corewalk.Config{
		Start:      start,
		LowerBound: lower,
		UpperBound: upper,
		Bias:       bias,
		MaxSteps:   rw.maxSteps,
	}, rw.logger, rw.streams)
	if err != nil {
		return 0, err
	}
	return sim.Walk(ctx, seed)
}

// Estimate runs walks trajectories from start and returns the empirical
// probability of absorption at the lower barrier, with the full tally.
func (rw *RandomWalk) Estimate(ctx context.Context, start, lower, upper int, bias float64, walks int) (domain.Result, error) {
	est, err := rw.newEstimator(lower, upper, bias, walks)
	if err != nil {
		return domain.Result{}, err
	}
	return est.Estimate(ctx, start)
}

// Distribution returns the empirical absorption probability for every
// starting position from lower to upper, ascending.
func (rw *RandomWalk) Distribution(ctx context.Context, lower, upper int, bias float64, walks int) ([]float64, error) {
	est, err := rw.newEstimator(lower, upper, bias, walks)
	if err != nil {
		return nil, err
	}
	return est.Distribution(ctx)
}

var (
	defaultOnce sync.Once
	defaultRW   *RandomWalk
	defaultErr  error
)

func defaultRandomWalk() (*RandomWalk, error) {
	defaultOnce.Do(func() {
		defaultRW, defaultErr = New()
	})
	return defaultRW, defaultErr
}

// WalkWithDefaults runs a single walk on a shared instance with default
// configuration.
func WalkWithDefaults(start, lower, upper int, bias float64, seed int64) (int, error) {
	rw, err := defaultRandomWalk()
	if err != nil {
		return 0, err
	}
	return rw.Walk(context.Background(), start, lower, upper, bias, seed)
}

// EstimateWithDefaults estimates the lower-barrier absorption probability
// on a shared instance with default configuration.
func EstimateWithDefaults(start, lower, upper int, bias float64, walks int) (float64, error) {
	rw, err := defaultRandomWalk()
	if err != nil {
		return 0, err
	}
	res, err := rw.Estimate(context.Background(), start, lower, upper, bias, walks)
	if err != nil {
		return 0, err
	}
	return res.Probability, nil
}

func (rw *RandomWalk) newEstimator(lower, upper int, bias float64, walks int) (*coreabsorption.Estimator, error) {
	return coreabsorption.NewEstimator(coreabsorption.Config{
		LowerBound: lower,
		UpperBound: upper,
		Bias:       bias,
		Walks:      walks,
		Workers:    rw.workers,
		MaxSteps:   rw.maxSteps,
	}, rw.logger, rw.streams)
}
