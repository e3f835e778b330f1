// Package rng provides deterministic random stream adapters for the
// simulation core. Streams are backed by math/rand/v2 PCG generators so
// that every trajectory owns its own state and two streams built from the
// same seed replay the same draw sequence.
package rng

import (
	"math/rand/v2"

	"github.com/baditaflorin/go_absorbing_walk/internal/ports"
)

// PCGFactory builds independent PCG-backed random streams.
type PCGFactory struct{}

// NewPCGFactory creates the default stream factory.
func NewPCGFactory() *PCGFactory {
	return &PCGFactory{}
}

// Stream returns a deterministic random stream for the given seed.
func (f *PCGFactory) Stream(seed int64) ports.RandomSource {
	return &pcgSource{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

type pcgSource struct {
	r *rand.Rand
}

// Float64 returns the next uniform draw in [0, 1).
func (s *pcgSource) Float64() float64 {
	return s.r.Float64()
}
