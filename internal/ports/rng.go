package ports

// RandomSource provides uniform random draws in [0, 1).
type RandomSource interface {
	Float64() float64
}

// RandomStreamFactory creates independent deterministic random streams.
// Streams built from the same seed must produce the same draw sequence,
// and streams built from different seeds must not share state, so that
// trajectories can run concurrently without contention.
type RandomStreamFactory interface {
	Stream(seed int64) RandomSource
}
