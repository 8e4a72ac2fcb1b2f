package colour

import (
	"errors"
	"testing"
)

type fixedPartitioner struct {
	centroids []Triple
	err       error
}

func (f fixedPartitioner) Partition([]Triple, int) ([]Triple, error) {
	return f.centroids, f.err
}

func TestClusterCheckerboard(t *testing.T) {
	var samples []Triple
	for i := range 16 {
		if i%2 == 0 {
			samples = append(samples, Triple{0, 0, 0})
		} else {
			samples = append(samples, Triple{255, 255, 255})
		}
	}

	centroids, err := NewClusterer(NewLloydPartitioner(seeded(1))).Cluster(samples, 2)
	if err != nil {
		t.Fatalf("Cluster() error = %v", err)
	}

	got := sortBySum(centroids)
	if !near(got[0], Triple{0, 0, 0}, 1e-6) || !near(got[1], Triple{255, 255, 255}, 1e-6) {
		t.Errorf("Cluster() = %v, want black and white", got)
	}
}

func TestClusterUniformKeepsColour(t *testing.T) {
	samples := make([]Triple, 100)
	for i := range samples {
		samples[i] = Triple{100, 150, 200}
	}

	centroids, err := NewClusterer(NewLloydPartitioner(seeded(1))).Cluster(samples, 2)
	if err != nil {
		t.Fatalf("Cluster() error = %v", err)
	}
	for _, c := range centroids {
		if !near(c, Triple{100, 150, 200}, 1e-9) {
			t.Errorf("centroid = %v, want (100, 150, 200)", c)
		}
	}
}

func TestClusterDenormalises(t *testing.T) {
	samples := []Triple{{0, 0, 0}, {2, 4, 0}}
	// Scale is (1, 2, 1), so a whitened centroid of (1, 1, 0) maps to (1, 2, 0).
	c := NewClusterer(fixedPartitioner{centroids: []Triple{{1, 1, 0}}})

	got, err := c.Cluster(samples, 1)
	if err != nil {
		t.Fatalf("Cluster() error = %v", err)
	}
	if !near(got[0], Triple{1, 2, 0}, 1e-9) {
		t.Errorf("Cluster() = %v, want (1, 2, 0)", got[0])
	}
}

func TestClusterErrors(t *testing.T) {
	partitionErr := errors.New("boom")

	tests := []struct {
		name    string
		p       Partitioner
		samples []Triple
		m       int
	}{
		{name: "no samples", p: fixedPartitioner{}, samples: nil, m: 2},
		{name: "zero clusters", p: fixedPartitioner{}, samples: []Triple{{1, 1, 1}}, m: 0},
		{name: "partitioner error", p: fixedPartitioner{err: partitionErr}, samples: []Triple{{1, 1, 1}}, m: 1},
		{name: "wrong centroid count", p: fixedPartitioner{centroids: []Triple{{1, 1, 1}}}, samples: []Triple{{1, 1, 1}}, m: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewClusterer(tt.p).Cluster(tt.samples, tt.m); err == nil {
				t.Error("Cluster() expected error, got nil")
			}
		})
	}
}
