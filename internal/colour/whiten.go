package colour

import (
	"gonum.org/v1/gonum/stat"
)

// minWhiteningScale treats deviations at floating-point noise level as zero.
const minWhiteningScale = 1e-12

// WhiteningScale returns the per-channel population standard deviation of
// samples. Channels with zero deviation get a scale of 1 so that whitening
// leaves them unchanged instead of dividing by zero.
func WhiteningScale(samples []Triple) Triple {
	scale := Triple{1, 1, 1}
	if len(samples) == 0 {
		return scale
	}

	channel := make([]float64, len(samples))
	for c := range 3 {
		for i, s := range samples {
			channel[i] = s[c]
		}
		_, std := stat.PopMeanStdDev(channel, nil)
		if std > minWhiteningScale {
			scale[c] = std
		}
	}
	return scale
}

// Whiten divides each channel of every sample by scale.
func Whiten(samples []Triple, scale Triple) []Triple {
	out := make([]Triple, len(samples))
	for i, s := range samples {
		out[i] = Triple{s[0] / scale[0], s[1] / scale[1], s[2] / scale[2]}
	}
	return out
}

// Denormalise multiplies each channel of every centroid by scale,
// undoing Whiten.
func Denormalise(centroids []Triple, scale Triple) []Triple {
	out := make([]Triple, len(centroids))
	for i, c := range centroids {
		out[i] = Triple{c[0] * scale[0], c[1] * scale[1], c[2] * scale[2]}
	}
	return out
}
