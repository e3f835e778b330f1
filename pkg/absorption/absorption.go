// Package absorption provides a configurable Monte Carlo estimator for
// absorption probabilities of biased random walks.
package absorption

import (
	"context"

	"github.com/baditaflorin/go_absorbing_walk/internal/adapters/logger"
	"github.com/baditaflorin/go_absorbing_walk/internal/adapters/rng"
	coreabsorption "github.com/baditaflorin/go_absorbing_walk/internal/core/absorption"
	"github.com/baditaflorin/go_absorbing_walk/internal/core/domain"
	"github.com/baditaflorin/go_absorbing_walk/internal/ports"
	"github.com/baditaflorin/go_absorbing_walk/internal/warmup"
	"github.com/baditaflorin/l"
)

// Estimator estimates absorption probabilities over many independent walks.
type Estimator struct {
	estimator ports.AbsorptionEstimator
	logger    ports.Logger
	warmed    bool
}

// EstimatorOption defines a functional option for configuring an Estimator.
type EstimatorOption func(*estimatorConfig)

type estimatorConfig struct {
	LowerBound   int
	UpperBound   int
	Bias         float64
	Walks        int
	Workers      int
	MaxSteps     int
	Logger       ports.Logger
	Streams      ports.RandomStreamFactory
	WarmUp       bool
	WarmUpConfig warmup.Config
}

// WithBounds sets the absorbing barrier positions.
func WithBounds(lower, upper int) EstimatorOption {
	return func(cfg *estimatorConfig) {
		cfg.LowerBound = lower
		cfg.UpperBound = upper
	}
}

// WithBias sets the probability of a rightward step.
func WithBias(bias float64) EstimatorOption {
	return func(cfg *estimatorConfig) {
		cfg.Bias = bias
	}
}

// WithWalks sets the number of trajectories per estimate.
func WithWalks(walks int) EstimatorOption {
	return func(cfg *estimatorConfig) {
		cfg.Walks = walks
	}
}

// WithWorkers sets the number of concurrent trajectory workers. Values
// below 2 keep the estimate sequential; the estimate itself is identical
// either way.
func WithWorkers(workers int) EstimatorOption {
	return func(cfg *estimatorConfig) {
		cfg.Workers = workers
	}
}

// WithMaxSteps caps the number of steps per walk (0 = no cap).
func WithMaxSteps(maxSteps int) EstimatorOption {
	return func(cfg *estimatorConfig) {
		cfg.MaxSteps = maxSteps
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) EstimatorOption {
	return func(cfg *estimatorConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithStreamFactory sets a custom random stream factory.
func WithStreamFactory(streams ports.RandomStreamFactory) EstimatorOption {
	return func(cfg *estimatorConfig) {
		cfg.Streams = streams
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) EstimatorOption {
	return func(cfg *estimatorConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.Config) EstimatorOption {
	return func(cfg *estimatorConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a new Estimator instance.
func New(opts ...EstimatorOption) (*Estimator, error) {
	defaultConfig := coreabsorption.DefaultConfig()

	config := &estimatorConfig{
		LowerBound:   0,
		UpperBound:   10,
		Bias:         0.5,
		Walks:        defaultConfig.Walks,
		Workers:      defaultConfig.Workers,
		WarmUp:       false,
		WarmUpConfig: warmup.DefaultConfig(),
	}

	for _, opt := range opts {
		opt(config)
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	if config.Streams == nil {
		config.Streams = rng.NewPCGFactory()
	}

	coreEstimator, err := coreabsorption.NewEstimator(coreabsorption.Config{
		LowerBound: config.LowerBound,
		UpperBound: config.UpperBound,
		Bias:       config.Bias,
		Walks:      config.Walks,
		Workers:    config.Workers,
		MaxSteps:   config.MaxSteps,
	}, config.Logger, config.Streams)
	if err != nil {
		return nil, err
	}

	est := &Estimator{
		estimator: coreEstimator,
		logger:    config.Logger,
		warmed:    false,
	}

	if config.WarmUp {
		est.WarmUp(context.Background(), config.WarmUpConfig)
	}

	return est, nil
}

// Estimate returns the full result for walks started at start.
func (e *Estimator) Estimate(ctx context.Context, start int) (domain.Result, error) {
	return e.estimator.Estimate(ctx, start)
}

// Probability returns just the empirical probability of absorption at the
// lower boundary for walks started at start.
func (e *Estimator) Probability(ctx context.Context, start int) (float64, error) {
	res, err := e.estimator.Estimate(ctx, start)
	if err != nil {
		return 0, err
	}
	return res.Probability, nil
}

// Distribution returns one probability per starting position, from the
// lower to the upper boundary, ascending.
func (e *Estimator) Distribution(ctx context.Context) ([]float64, error) {
	return e.estimator.Distribution(ctx)
}

// WarmUp performs system warm-up to optimize performance.
func (e *Estimator) WarmUp(ctx context.Context, config warmup.Config) {
	if e.warmed {
		e.logger.Debug("System already warmed up, skipping")
		return
	}

	warmupMgr := warmup.NewManager(e.logger, config)
	warmupMgr.RegisterEstimator(e.estimator)

	warmupMgr.WarmUp(ctx)
	e.warmed = true
}
