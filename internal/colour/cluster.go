package colour

import (
	"fmt"
)

// Clusterer whitens samples, partitions them and maps the resulting
// centroids back into the sample space.
type Clusterer struct {
	partitioner Partitioner
}

// NewClusterer creates a Clusterer backed by p.
func NewClusterer(p Partitioner) *Clusterer {
	return &Clusterer{partitioner: p}
}

// Cluster returns m centroids for samples, in the same colour space as the
// samples. Denormalisation reuses the scale computed from the samples.
func (c *Clusterer) Cluster(samples []Triple, m int) ([]Triple, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples to cluster")
	}
	if m < 1 {
		return nil, fmt.Errorf("cluster count must be at least 1, got %d", m)
	}

	scale := WhiteningScale(samples)
	centroids, err := c.partitioner.Partition(Whiten(samples, scale), m)
	if err != nil {
		return nil, err
	}
	if len(centroids) != m {
		return nil, fmt.Errorf("expected %d centroids, got %d", m, len(centroids))
	}

	return Denormalise(centroids, scale), nil
}
