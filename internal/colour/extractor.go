package colour

import (
	"fmt"
	"slices"
	"time"
)

// Algorithm represents the k-means backend used for clustering.
type Algorithm string

const (
	// AlgorithmKMeans uses the seeded Lloyd implementation in this package.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmMuesli uses github.com/muesli/kmeans. It ignores the seed.
	AlgorithmMuesli Algorithm = "muesli"
)

// Default clustering parameters.
const (
	DefaultMaxIterations = 50
	DefaultConvergence   = 1e-5
	DefaultRestarts      = 10
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmKMeans,
		AlgorithmMuesli,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// ExtractorOptions configures the clustering backend.
type ExtractorOptions struct {
	// Seed initialises centroid selection. Nil picks a time-based seed.
	Seed *int64

	MaxIterations int
	Convergence   float64
	Restarts      int
}

func (o ExtractorOptions) withDefaults() ExtractorOptions {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Convergence <= 0 {
		o.Convergence = DefaultConvergence
	}
	if o.Restarts <= 0 {
		o.Restarts = DefaultRestarts
	}
	return o
}

func (o ExtractorOptions) seedValue() int64 {
	if o.Seed != nil {
		return *o.Seed
	}
	return time.Now().UnixNano()
}

// NewPartitioner creates a Partitioner based on the specified algorithm.
// Returns an error if the algorithm is not recognised.
func NewPartitioner(alg Algorithm, opts ExtractorOptions) (Partitioner, error) {
	switch alg {
	case AlgorithmKMeans:
		return NewLloydPartitioner(opts), nil
	case AlgorithmMuesli:
		return NewMuesliPartitioner(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}
