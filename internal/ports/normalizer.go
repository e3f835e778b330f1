package ports

// ValueNormalizer defines the interface for presentation-boundary cleanup of
// probability arrays. Core packages return raw values; normalization is
// applied only by consumers that format or serialize them.
type ValueNormalizer interface {
	Normalize(values []float64) []float64
}
