package walk

import (
	"context"
	"fmt"

	"github.com/baditaflorin/go_absorbing_walk/internal/core/domain"
	"github.com/baditaflorin/go_absorbing_walk/internal/ports"
)

// ctxCheckInterval is how many steps pass between context checks inside the
// step loop. Walks near the symmetric bias can run long, so the loop must
// stay responsive to cancellation without paying for a check on every step.
const ctxCheckInterval = 4096

// Config holds configuration for the walk simulator.
type Config struct {
	// Start is the initial position of the walker.
	Start int
	// LowerBound and UpperBound are the absorbing barriers.
	LowerBound int
	UpperBound int
	// Bias is the probability of a rightward step.
	Bias float64
	// MaxSteps caps the number of steps per walk; 0 means no cap.
	MaxSteps int
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.LowerBound >= c.UpperBound {
		return fmt.Errorf("%w: lower bound %d must be below upper bound %d",
			domain.ErrInvalidParameter, c.LowerBound, c.UpperBound)
	}
	if c.Start < c.LowerBound || c.Start > c.UpperBound {
		return fmt.Errorf("%w: start %d must lie in [%d, %d]",
			domain.ErrInvalidParameter, c.Start, c.LowerBound, c.UpperBound)
	}
	if c.Bias < 0 || c.Bias > 1 {
		return fmt.Errorf("%w: bias %v must lie in [0, 1]",
			domain.ErrInvalidParameter, c.Bias)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("%w: max steps %d must not be negative",
			domain.ErrInvalidParameter, c.MaxSteps)
	}
	return nil
}

// Simulator runs single walks between two absorbing barriers.
type Simulator struct {
	config  Config
	logger  ports.Logger
	streams ports.RandomStreamFactory
}

// NewSimulator creates a new walk simulator.
func NewSimulator(config Config, logger ports.Logger, streams ports.RandomStreamFactory) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Simulator{
		config:  config,
		logger:  logger,
		streams: streams,
	}, nil
}

// Config returns the simulator configuration.
func (s *Simulator) Config() Config {
	return s.config
}

// Walk runs one trajectory seeded by seed and returns the absorbing boundary
// it terminated at. The same seed always replays the same trajectory.
func (s *Simulator) Walk(ctx context.Context, seed int64) (int, error) {
	position := s.config.Start
	if position == s.config.LowerBound || position == s.config.UpperBound {
		return position, nil
	}

	src := s.streams.Stream(seed)
	steps := 0
	for position > s.config.LowerBound && position < s.config.UpperBound {
		if steps%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				s.logger.Error("Walk cancelled", "seed", seed, "steps", steps, "error", ctx.Err())
				return 0, ctx.Err()
			default:
			}
		}
		if s.config.MaxSteps > 0 && steps >= s.config.MaxSteps {
			s.logger.Warn("Walk exceeded step cap",
				"seed", seed,
				"max_steps", s.config.MaxSteps,
				"position", position,
			)
			return 0, fmt.Errorf("%w: walk with seed %d still at %d after %d steps",
				domain.ErrStepLimit, seed, position, steps)
		}

		if src.Float64() <= s.config.Bias {
			position++
		} else {
			position--
		}
		steps++
	}

	s.logger.Debug("Walk absorbed",
		"seed", seed,
		"start", s.config.Start,
		"absorbed_at", position,
		"steps", steps,
	)

	return position, nil
}
