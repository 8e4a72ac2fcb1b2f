package colour

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Selector picks k distinctive colours from a larger HSV candidate pool.
type Selector interface {
	Select(pool []Triple, k int) ([]Triple, error)
}

// Strategy names a Selector implementation.
type Strategy string

const (
	// StrategyScore keeps the candidates that deviate most from the pool's
	// average hue and brightness, weighted toward saturated colours.
	StrategyScore Strategy = "score"

	// StrategyDispersion greedily picks candidates that are far apart,
	// de-emphasising extreme saturation and value.
	StrategyDispersion Strategy = "dispersion"
)

// ValidStrategies returns a list of valid selection strategies.
func ValidStrategies() []Strategy {
	return []Strategy{StrategyScore, StrategyDispersion}
}

// NewSelector creates a Selector for the given strategy.
func NewSelector(s Strategy) (Selector, error) {
	switch s {
	case StrategyScore:
		return ScoreSelector{}, nil
	case StrategyDispersion:
		return NewDispersionSelector(), nil
	default:
		return nil, fmt.Errorf("unknown selection strategy: %s (valid: %v)", s, ValidStrategies())
	}
}

func validateSelection(pool []Triple, k int) error {
	if k < 1 {
		return fmt.Errorf("selection size must be at least 1, got %d", k)
	}
	if len(pool) < k {
		return fmt.Errorf("candidate pool has %d colours, need at least %d", len(pool), k)
	}
	return nil
}

// ScoreSelector ranks candidates by
//
//	sqrt(|h - mean(h)|) * s² * (v / mean(v))
//
// and drops the lowest scoring ones.
type ScoreSelector struct{}

// Score returns the distinctiveness score of every candidate in pool.
func (ScoreSelector) Score(pool []Triple) []float64 {
	hues := make([]float64, len(pool))
	values := make([]float64, len(pool))
	for i, c := range pool {
		hues[i] = c[0]
		values[i] = c[2]
	}
	meanHue := stat.Mean(hues, nil)
	meanValue := stat.Mean(values, nil)

	scores := make([]float64, len(pool))
	for i, c := range pool {
		ratio := 0.0
		if meanValue > 0 {
			ratio = c[2] / meanValue
		}
		scores[i] = math.Sqrt(math.Abs(c[0]-meanHue)) * c[1] * c[1] * ratio
	}
	return scores
}

// Select returns the k highest scoring candidates in ascending score order.
func (s ScoreSelector) Select(pool []Triple, k int) ([]Triple, error) {
	if err := validateSelection(pool, k); err != nil {
		return nil, err
	}

	scores := s.Score(pool)
	order := make([]int, len(pool))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case scores[a] < scores[b]:
			return -1
		case scores[a] > scores[b]:
			return 1
		default:
			return 0
		}
	})

	selected := make([]Triple, 0, k)
	for _, idx := range order[len(order)-k:] {
		selected = append(selected, pool[idx])
	}
	return selected, nil
}

// Dispersion weighting parameters.
const (
	dispersionCentre = 0.8
	dispersionSigma  = 0.25
)

// DispersionSelector performs greedy max-dispersion selection using a
// weighted colour difference.
type DispersionSelector struct {
	centre float64
	sigma  float64
}

// NewDispersionSelector creates a DispersionSelector with a Gaussian weight
// centred at 0.8 for saturation and value.
func NewDispersionSelector() DispersionSelector {
	return DispersionSelector{centre: dispersionCentre, sigma: dispersionSigma}
}

// weight de-emphasises near-grey, near-black and fully saturated colours.
func (d DispersionSelector) weight(c Triple) float64 {
	gauss := func(x float64) float64 {
		dx := x - d.centre
		return math.Exp(-(dx * dx) / (2 * d.sigma * d.sigma))
	}
	return gauss(c[1]) * gauss(c[2])
}

// Difference returns the weighted difference between two HSV colours.
// Hue distance wraps around the colour wheel.
func (d DispersionSelector) Difference(a, b Triple) float64 {
	dh := math.Abs(a[0] - b[0])
	dh = math.Min(dh, 1-dh)
	ds := a[1] - b[1]
	dv := a[2] - b[2]
	return math.Sqrt(dh*dh+ds*ds+dv*dv) * d.weight(a) * d.weight(b)
}

// Select seeds with the candidate that differs most from all others and
// then repeatedly adds the candidate that differs most from those chosen.
func (d DispersionSelector) Select(pool []Triple, k int) ([]Triple, error) {
	if err := validateSelection(pool, k); err != nil {
		return nil, err
	}

	chosen := make([]int, 0, k)
	taken := make([]bool, len(pool))

	seed, bestTotal := 0, math.Inf(-1)
	for i := range pool {
		total := 0.0
		for j := range pool {
			if i != j {
				total += d.Difference(pool[i], pool[j])
			}
		}
		if total > bestTotal {
			seed, bestTotal = i, total
		}
	}
	chosen = append(chosen, seed)
	taken[seed] = true

	for len(chosen) < k {
		bestIdx, bestTotal := -1, math.Inf(-1)
		for i := range pool {
			if taken[i] {
				continue
			}
			total := 0.0
			for _, c := range chosen {
				total += d.Difference(pool[i], pool[c])
			}
			if total > bestTotal {
				bestIdx, bestTotal = i, total
			}
		}
		taken[bestIdx] = true
		chosen = append(chosen, bestIdx)
	}

	selected := make([]Triple, len(chosen))
	for i, idx := range chosen {
		selected[i] = pool[idx]
	}
	return selected, nil
}
