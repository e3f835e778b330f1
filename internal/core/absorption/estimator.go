// Package absorption estimates absorption probabilities for biased random
// walks between two absorbing barriers by Monte Carlo sampling. Each of the
// n trajectories owns a deterministic random stream keyed by its index, so
// an estimate is reproducible call to call and identical whether the
// trajectories run sequentially or across workers.
package absorption

import (
	"context"
	"fmt"

	"github.com/baditaflorin/go_absorbing_walk/internal/core/domain"
	"github.com/baditaflorin/go_absorbing_walk/internal/core/walk"
	"github.com/baditaflorin/go_absorbing_walk/internal/pool"
	"github.com/baditaflorin/go_absorbing_walk/internal/ports"
)

// Config holds configuration for the absorption estimator.
type Config struct {
	// LowerBound and UpperBound are the absorbing barriers.
	LowerBound int
	UpperBound int
	// Bias is the probability of a rightward step.
	Bias float64
	// Walks is the number of trajectories per estimate.
	Walks int
	// Workers is the number of concurrent trajectory workers.
	// Values below 2 run the estimate sequentially.
	Workers int
	// MaxSteps caps the steps of each walk; 0 means no cap.
	MaxSteps int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Walks:   1000,
		Workers: 1,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.LowerBound >= c.UpperBound {
		return fmt.Errorf("%w: lower bound %d must be below upper bound %d",
			domain.ErrInvalidParameter, c.LowerBound, c.UpperBound)
	}
	if c.Bias < 0 || c.Bias > 1 {
		return fmt.Errorf("%w: bias %v must lie in [0, 1]",
			domain.ErrInvalidParameter, c.Bias)
	}
	if c.Walks <= 0 {
		return fmt.Errorf("%w: walks %d must be positive",
			domain.ErrInvalidParameter, c.Walks)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative",
			domain.ErrInvalidParameter, c.Workers)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("%w: max steps %d must not be negative",
			domain.ErrInvalidParameter, c.MaxSteps)
	}
	return nil
}

// Estimator implements Monte Carlo absorption probability estimation.
type Estimator struct {
	config   Config
	logger   ports.Logger
	streams  ports.RandomStreamFactory
	outcomes *pool.OutcomePool
}

// NewEstimator creates a new absorption estimator.
func NewEstimator(config Config, logger ports.Logger, streams ports.RandomStreamFactory) (*Estimator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Estimator{
		config:   config,
		logger:   logger,
		streams:  streams,
		outcomes: pool.NewOutcomePool(config.Walks),
	}, nil
}

// Config returns the estimator configuration.
func (e *Estimator) Config() Config {
	return e.config
}

// Estimate returns the empirical probability of absorption at the lower
// boundary for walks started at start. Starts on a boundary short-circuit
// without simulating.
func (e *Estimator) Estimate(ctx context.Context, start int) (domain.Result, error) {
	if start < e.config.LowerBound || start > e.config.UpperBound {
		return domain.Result{}, fmt.Errorf("%w: start %d must lie in [%d, %d]",
			domain.ErrInvalidParameter, start, e.config.LowerBound, e.config.UpperBound)
	}

	// A walker placed on a barrier is absorbed before its first step.
	switch start {
	case e.config.LowerBound:
		return e.result(start, domain.Tally{Lower: e.config.Walks}), nil
	case e.config.UpperBound:
		return e.result(start, domain.Tally{Upper: e.config.Walks}), nil
	}

	sim, err := walk.NewSimulator(walk.Config{
		Start:      start,
		LowerBound: e.config.LowerBound,
		UpperBound: e.config.UpperBound,
		Bias:       e.config.Bias,
		MaxSteps:   e.config.MaxSteps,
	}, e.logger, e.streams)
	if err != nil {
		return domain.Result{}, err
	}

	var tally domain.Tally
	if e.config.Workers > 1 {
		tally, err = e.estimateParallel(ctx, sim)
	} else {
		tally, err = e.estimateSequential(ctx, sim)
	}
	if err != nil {
		return domain.Result{}, err
	}

	e.logger.Debug("Estimate complete",
		"start", start,
		"walks", e.config.Walks,
		"absorbed_lower", tally.Lower,
		"absorbed_upper", tally.Upper,
	)

	return e.result(start, tally), nil
}

// estimateSequential runs the trajectories one after another, with seeds
// equal to the trajectory indices 0..Walks-1.
func (e *Estimator) estimateSequential(ctx context.Context, sim *walk.Simulator) (domain.Tally, error) {
	buf := e.outcomes.Get()
	defer e.outcomes.Put(buf)

	for i := 0; i < e.config.Walks; i++ {
		position, err := sim.Walk(ctx, int64(i))
		if err != nil {
			return domain.Tally{}, err
		}
		*buf = append(*buf, position)
	}

	return e.tallyOutcomes(*buf)
}

// tallyOutcomes folds walk outcomes into the two-slot tally.
func (e *Estimator) tallyOutcomes(outcomes []int) (domain.Tally, error) {
	var tally domain.Tally
	for _, position := range outcomes {
		switch position {
		case e.config.LowerBound:
			tally.Lower++
		case e.config.UpperBound:
			tally.Upper++
		default:
			return domain.Tally{}, fmt.Errorf("walk terminated off-barrier at %d", position)
		}
	}
	return tally, nil
}

func (e *Estimator) result(start int, tally domain.Tally) domain.Result {
	details := make(map[string]interface{})
	details["absorbed_lower"] = tally.Lower
	details["absorbed_upper"] = tally.Upper
	details["workers"] = e.config.Workers

	return domain.Result{
		Name:        "absorption_estimate",
		Probability: float64(tally.Lower) / float64(e.config.Walks),
		Start:       start,
		LowerBound:  e.config.LowerBound,
		UpperBound:  e.config.UpperBound,
		Bias:        e.config.Bias,
		Walks:       e.config.Walks,
		Tally:       tally,
		Details:     details,
	}
}
