// Package comparison runs simulation and theory side by side over a site
// range with barriers at 1 and N, producing aligned arrays for external
// reporting or plotting layers. It renders nothing itself.
package comparison

import (
	"context"

	"github.com/baditaflorin/go_absorbing_walk/internal/adapters/logger"
	"github.com/baditaflorin/go_absorbing_walk/internal/ports"
	"github.com/baditaflorin/go_absorbing_walk/pkg/absorption"
	"github.com/baditaflorin/go_absorbing_walk/pkg/theory"
	"github.com/baditaflorin/l"
)

// Series pairs a simulated distribution with its closed-form prediction.
type Series struct {
	Simulated []float64
	Predicted []float64
}

// Result holds aligned simulation/theory arrays for sites 1..N.
type Result struct {
	Sites      []int
	Bias       float64
	Walks      int
	Asymmetric Series
	Symmetric  Series
}

// Comparer orchestrates a side-by-side run of the estimator and predictor.
type Comparer struct {
	sites   int
	bias    float64
	walks   int
	workers int
	logger  ports.Logger
	lg      l.Logger
}

// ComparerOption defines a functional option for configuring a Comparer.
type ComparerOption func(*Comparer)

// WithSites sets the number of sites N (barriers at 1 and N).
func WithSites(n int) ComparerOption {
	return func(c *Comparer) {
		c.sites = n
	}
}

// WithBias sets the rightward bias of the asymmetric run.
func WithBias(bias float64) ComparerOption {
	return func(c *Comparer) {
		c.bias = bias
	}
}

// WithWalks sets the number of trajectories per starting site.
func WithWalks(walks int) ComparerOption {
	return func(c *Comparer) {
		c.walks = walks
	}
}

// WithWorkers sets the number of concurrent trajectory workers.
func WithWorkers(workers int) ComparerOption {
	return func(c *Comparer) {
		c.workers = workers
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) ComparerOption {
	return func(c *Comparer) {
		c.lg = lg
		c.logger = logger.FromExisting(lg)
	}
}

// New creates a new Comparer instance.
func New(opts ...ComparerOption) (*Comparer, error) {
	c := &Comparer{
		sites: 10,
		bias:  0.7,
		walks: 1000,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		lg, err := logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
		c.logger = lg
	}

	return c, nil
}

// Compare runs the asymmetric comparison at the configured bias and the
// symmetric comparison at bias 0.5, both over sites 1..N.
func (c *Comparer) Compare(ctx context.Context) (Result, error) {
	res := Result{
		Sites: make([]int, c.sites),
		Bias:  c.bias,
		Walks: c.walks,
	}
	for i := range res.Sites {
		res.Sites[i] = i + 1
	}

	predictor, err := c.newPredictor()
	if err != nil {
		return Result{}, err
	}

	c.logger.Info("Running comparison",
		"sites", c.sites,
		"bias", c.bias,
		"walks", c.walks,
	)

	asym, err := c.runSeries(ctx, c.bias, func() ([]float64, error) {
		return predictor.Asymmetric(c.bias, c.sites)
	})
	if err != nil {
		return Result{}, err
	}
	res.Asymmetric = asym

	sym, err := c.runSeries(ctx, 0.5, func() ([]float64, error) {
		return predictor.Symmetric(c.sites)
	})
	if err != nil {
		return Result{}, err
	}
	res.Symmetric = sym

	return res, nil
}

// runSeries simulates a distribution at the given bias and pairs it with
// the supplied prediction.
func (c *Comparer) runSeries(ctx context.Context, bias float64, predict func() ([]float64, error)) (Series, error) {
	estimator, err := c.newEstimator(bias)
	if err != nil {
		return Series{}, err
	}

	simulated, err := estimator.Distribution(ctx)
	if err != nil {
		return Series{}, err
	}

	predicted, err := predict()
	if err != nil {
		return Series{}, err
	}

	return Series{Simulated: simulated, Predicted: predicted}, nil
}

func (c *Comparer) newEstimator(bias float64) (*absorption.Estimator, error) {
	opts := []absorption.EstimatorOption{
		absorption.WithBounds(1, c.sites),
		absorption.WithBias(bias),
		absorption.WithWalks(c.walks),
		absorption.WithWorkers(c.workers),
	}
	if c.lg != nil {
		opts = append(opts, absorption.WithLogger(c.lg))
	}
	return absorption.New(opts...)
}

func (c *Comparer) newPredictor() (*theory.Predictor, error) {
	var opts []theory.PredictorOption
	if c.lg != nil {
		opts = append(opts, theory.WithLogger(c.lg))
	}
	return theory.New(opts...)
}
