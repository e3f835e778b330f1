// Package walk provides a configurable single-trajectory random walk
// simulator with absorbing barriers.
package walk

import (
	"context"

	"github.com/baditaflorin/go_absorbing_walk/internal/adapters/logger"
	"github.com/baditaflorin/go_absorbing_walk/internal/adapters/rng"
	corewalk "github.com/baditaflorin/go_absorbing_walk/internal/core/walk"
	"github.com/baditaflorin/go_absorbing_walk/internal/ports"
	"github.com/baditaflorin/go_absorbing_walk/internal/warmup"
	"github.com/baditaflorin/l"
)

// Walker runs single biased random walks to absorption.
type Walker struct {
	simulator *corewalk.Simulator
	logger    ports.Logger
	warmed    bool
}

// WalkerOption defines a functional option for configuring a Walker.
type WalkerOption func(*walkerConfig)

type walkerConfig struct {
	Start        int
	LowerBound   int
	UpperBound   int
	Bias         float64
	MaxSteps     int
	Logger       ports.Logger
	Streams      ports.RandomStreamFactory
	WarmUp       bool
	WarmUpConfig warmup.Config
}

// WithStart sets the starting position.
func WithStart(start int) WalkerOption {
	return func(cfg *walkerConfig) {
		cfg.Start = start
	}
}

// WithBounds sets the absorbing barrier positions.
func WithBounds(lower, upper int) WalkerOption {
	return func(cfg *walkerConfig) {
		cfg.LowerBound = lower
		cfg.UpperBound = upper
	}
}

// WithBias sets the probability of a rightward step.
func WithBias(bias float64) WalkerOption {
	return func(cfg *walkerConfig) {
		cfg.Bias = bias
	}
}

// WithMaxSteps caps the number of steps per walk (0 = no cap).
func WithMaxSteps(maxSteps int) WalkerOption {
	return func(cfg *walkerConfig) {
		cfg.MaxSteps = maxSteps
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) WalkerOption {
	return func(cfg *walkerConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithStreamFactory sets a custom random stream factory.
func WithStreamFactory(streams ports.RandomStreamFactory) WalkerOption {
	return func(cfg *walkerConfig) {
		cfg.Streams = streams
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) WalkerOption {
	return func(cfg *walkerConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.Config) WalkerOption {
	return func(cfg *walkerConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a new Walker. Defaults describe an unbiased walk started
// midway between barriers at 0 and 10.
func New(opts ...WalkerOption) (*Walker, error) {
	config := &walkerConfig{
		Start:        5,
		LowerBound:   0,
		UpperBound:   10,
		Bias:         0.5,
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

	simulator, err := corewalk.NewSimulator(corewalk.Config{
		Start:      config.Start,
		LowerBound: config.LowerBound,
		UpperBound: config.UpperBound,
		Bias:       config.Bias,
		MaxSteps:   config.MaxSteps,
	}, config.Logger, config.Streams)
	if err != nil {
		return nil, err
	}

	w := &Walker{
		simulator: simulator,
		logger:    config.Logger,
		warmed:    false,
	}

	if config.WarmUp {
		w.WarmUp(context.Background(), config.WarmUpConfig)
	}

	return w, nil
}

// Walk runs one trajectory seeded by seed and returns the absorbing
// boundary position. Identical seeds replay identical trajectories.
func (w *Walker) Walk(ctx context.Context, seed int64) (int, error) {
	return w.simulator.Walk(ctx, seed)
}

// WarmUp performs system warm-up to optimize performance.
func (w *Walker) WarmUp(ctx context.Context, config warmup.Config) {
	if w.warmed {
		w.logger.Debug("System already warmed up, skipping")
		return
	}

	warmupMgr := warmup.NewManager(w.logger, config)
	warmupMgr.RegisterSimulator(w.simulator)

	warmupMgr.WarmUp(ctx)
	w.warmed = true
}
