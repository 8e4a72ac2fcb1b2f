package colour

import (
	"fmt"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// defaultDeltaThreshold stops iteration once fewer than 1% of points move.
const defaultDeltaThreshold = 0.01

// MuesliPartitioner delegates k-means to github.com/muesli/kmeans.
// The library seeds its own random source, so results vary between runs.
type MuesliPartitioner struct {
	deltaThreshold float64
}

// NewMuesliPartitioner creates a MuesliPartitioner with the default delta threshold.
func NewMuesliPartitioner() *MuesliPartitioner {
	return &MuesliPartitioner{deltaThreshold: defaultDeltaThreshold}
}

// Partition clusters points into k groups. The library refuses fewer
// observations than clusters, so short inputs are repeated cyclically
// until there are k of them; the surplus centroids then coincide with
// existing points, as they do for LloydPartitioner.
func (p *MuesliPartitioner) Partition(points []Triple, k int) ([]Triple, error) {
	if k < 1 {
		return nil, fmt.Errorf("cluster count must be at least 1, got %d", k)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no points to cluster")
	}

	dataset := make(clusters.Observations, max(len(points), k))
	for i := range dataset {
		pt := points[i%len(points)]
		dataset[i] = clusters.Coordinates{pt[0], pt[1], pt[2]}
	}

	km, err := kmeans.NewWithOptions(p.deltaThreshold, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to configure kmeans: %w", err)
	}

	cc, err := km.Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("kmeans partition failed: %w", err)
	}

	centroids := make([]Triple, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			return nil, fmt.Errorf("kmeans returned a %d-dimensional centre", len(c.Center))
		}
		centroids = append(centroids, Triple{c.Center[0], c.Center[1], c.Center[2]})
	}

	return centroids, nil
}
