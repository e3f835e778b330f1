package absorption

import (
	"context"
)

// Distribution returns the empirical absorption probability for every
// integer starting position from the lower to the upper boundary, ascending.
// The result has length UpperBound-LowerBound+1, index 0 corresponding to a
// start on the lower barrier.
func (e *Estimator) Distribution(ctx context.Context) ([]float64, error) {
	sites := e.config.UpperBound - e.config.LowerBound + 1
	out := make([]float64, sites)

	for i := 0; i < sites; i++ {
		res, err := e.Estimate(ctx, e.config.LowerBound+i)
		if err != nil {
			return nil, err
		}
		out[i] = res.Probability
	}

	e.logger.Debug("Distribution complete",
		"sites", sites,
		"walks_per_site", e.config.Walks,
	)

	return out, nil
}
