package colour

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Partitioner groups points into k clusters and returns their centroids.
// Points are expected to be whitened already; see Clusterer.
type Partitioner interface {
	Partition(points []Triple, k int) ([]Triple, error)
}

// LloydPartitioner implements k-means with Lloyd iteration and an explicit seed.
type LloydPartitioner struct {
	maxIterations int
	convergence   float64
	restarts      int
	seed          int64
}

// NewLloydPartitioner creates a LloydPartitioner from the given options.
// Zero-valued options fall back to the package defaults.
func NewLloydPartitioner(opts ExtractorOptions) *LloydPartitioner {
	opts = opts.withDefaults()
	return &LloydPartitioner{
		maxIterations: opts.MaxIterations,
		convergence:   opts.Convergence,
		restarts:      opts.Restarts,
		seed:          opts.seedValue(),
	}
}

// Seed returns the seed used to initialise centroids.
func (p *LloydPartitioner) Seed() int64 {
	return p.seed
}

// Partition runs k-means restarts times from different random starting
// centroids and returns the codebook with the lowest mean distortion.
//
// Centroids may repeat when the points hold fewer than k distinct values;
// that result is returned unchanged.
func (p *LloydPartitioner) Partition(points []Triple, k int) ([]Triple, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no points to partition")
	}
	if k < 1 {
		return nil, fmt.Errorf("cluster count must be at least 1, got %d", k)
	}

	// #nosec G404 -- clustering only needs a reproducible source, not a secure one
	rng := rand.New(rand.NewSource(p.seed))

	var best []Triple
	bestDistortion := math.Inf(1)
	for range max(p.restarts, 1) {
		centroids, distortion := p.lloyd(points, initialiseCentroids(points, k, rng))
		if best == nil || distortion < bestDistortion {
			best = centroids
			bestDistortion = distortion
		}
	}

	return best, nil
}

// lloyd iterates assignment and update steps until the mean centroid
// movement drops below the convergence threshold or the iteration cap is hit.
func (p *LloydPartitioner) lloyd(points, centroids []Triple) ([]Triple, float64) {
	assignments := make([]int, len(points))

	for range p.maxIterations {
		for i, point := range points {
			assignments[i] = nearestCentroid(point, centroids)
		}

		newCentroids := recalculateCentroids(points, assignments, centroids)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += distance(centroids[i], newCentroids[i])
		}
		centroids = newCentroids

		if totalMovement/float64(len(centroids)) < p.convergence {
			break
		}
	}

	return centroids, distortion(points, centroids)
}

// initialiseCentroids picks k points in random order. When there are fewer
// points than k the permutation wraps and points repeat.
func initialiseCentroids(points []Triple, k int, rng *rand.Rand) []Triple {
	perm := rng.Perm(len(points))
	centroids := make([]Triple, k)
	for i := range k {
		centroids[i] = points[perm[i%len(perm)]]
	}
	return centroids
}

// distance calculates the Euclidean distance between two triples.
func distance(a, b Triple) float64 {
	return floats.Distance(a[:], b[:], 2)
}

// nearestCentroid returns the index of the closest centroid.
// Ties resolve to the lowest index.
func nearestCentroid(point Triple, centroids []Triple) int {
	minDist := math.MaxFloat64
	nearest := 0

	for i, centroid := range centroids {
		if dist := distance(point, centroid); dist < minDist {
			minDist = dist
			nearest = i
		}
	}

	return nearest
}

// recalculateCentroids moves each centroid to the mean of its assigned
// points. A centroid with no points keeps its previous position.
func recalculateCentroids(points []Triple, assignments []int, previous []Triple) []Triple {
	sums := make([]Triple, len(previous))
	counts := make([]int, len(previous))

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster][0] += point[0]
		sums[cluster][1] += point[1]
		sums[cluster][2] += point[2]
		counts[cluster]++
	}

	centroids := make([]Triple, len(previous))
	for i := range previous {
		if counts[i] == 0 {
			centroids[i] = previous[i]
			continue
		}
		n := float64(counts[i])
		centroids[i] = Triple{sums[i][0] / n, sums[i][1] / n, sums[i][2] / n}
	}

	return centroids
}

// distortion is the mean distance from each point to its nearest centroid.
func distortion(points, centroids []Triple) float64 {
	total := 0.0
	for _, point := range points {
		total += distance(point, centroids[nearestCentroid(point, centroids)])
	}
	return total / float64(len(points))
}
