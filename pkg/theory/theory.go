// Package theory exposes the closed-form absorption probability formulas
// for barriers at sites 1 and N. By default arrays are passed through a
// sign normalizer that rewrites -0.0 as 0.0; the underlying formulas are
// exact either way, the cleanup is cosmetic and happens only here, at the
// presentation boundary.
package theory

import (
	"github.com/baditaflorin/go_absorbing_walk/internal/adapters/logger"
	"github.com/baditaflorin/go_absorbing_walk/internal/adapters/normalizer"
	coretheory "github.com/baditaflorin/go_absorbing_walk/internal/core/theory"
	"github.com/baditaflorin/go_absorbing_walk/internal/ports"
	"github.com/baditaflorin/l"
)

// Predictor computes theoretical absorption probability arrays.
type Predictor struct {
	predictor  *coretheory.Predictor
	normalizer ports.ValueNormalizer
}

// PredictorOption defines a functional option for configuring a Predictor.
type PredictorOption func(*predictorConfig)

type predictorConfig struct {
	Logger     ports.Logger
	Normalizer ports.ValueNormalizer
	Raw        bool
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) PredictorOption {
	return func(cfg *predictorConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithNormalizer sets a custom value normalizer.
func WithNormalizer(n ports.ValueNormalizer) PredictorOption {
	return func(cfg *predictorConfig) {
		cfg.Normalizer = n
	}
}

// WithClampNormalizer clamps output into [0, 1] in addition to the sign scrub.
func WithClampNormalizer() PredictorOption {
	return func(cfg *predictorConfig) {
		factory := normalizer.NewNormalizerFactory()
		cfg.Normalizer = factory.CreateNormalizer(normalizer.ClampNormalizerType)
	}
}

// WithRawValues disables output normalization entirely, exposing exact
// formula results including any negative zero.
func WithRawValues() PredictorOption {
	return func(cfg *predictorConfig) {
		cfg.Raw = true
	}
}

// New creates a new Predictor instance.
func New(opts ...PredictorOption) (*Predictor, error) {
	config := &predictorConfig{}

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

	if config.Normalizer == nil && !config.Raw {
		config.Normalizer = normalizer.NewSignNormalizer()
	}
	if config.Raw {
		config.Normalizer = nil
	}

	return &Predictor{
		predictor:  coretheory.NewPredictor(config.Logger),
		normalizer: config.Normalizer,
	}, nil
}

// Asymmetric returns finite-N probabilities for a biased walk, one entry
// per starting site 1..n. Bias 0.5 is rejected; use Symmetric instead.
func (p *Predictor) Asymmetric(bias float64, n int) ([]float64, error) {
	values, err := p.predictor.Asymmetric(bias, n)
	if err != nil {
		return nil, err
	}
	return p.normalize(values), nil
}

// Symmetric returns finite-N probabilities for the unbiased walk, one
// entry per starting site 1..n.
func (p *Predictor) Symmetric(n int) ([]float64, error) {
	values, err := p.predictor.Symmetric(n)
	if err != nil {
		return nil, err
	}
	return p.normalize(values), nil
}

// ThermodynamicLimit returns the large-N limiting probabilities for a walk
// with bias above 0.5, one entry per starting site 1..n.
func (p *Predictor) ThermodynamicLimit(bias float64, n int) ([]float64, error) {
	values, err := p.predictor.ThermodynamicLimit(bias, n)
	if err != nil {
		return nil, err
	}
	return p.normalize(values), nil
}

func (p *Predictor) normalize(values []float64) []float64 {
	if p.normalizer == nil {
		return values
	}
	return p.normalizer.Normalize(values)
}
