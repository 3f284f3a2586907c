package services

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/vsinha/vendorrisk/pkg/domain/entities"
)

const (
	// DensityGridSize is the number of points the density curve is evaluated at
	DensityGridSize = 200

	// densityCut extends the grid this many bandwidths past the observed range
	densityCut = 3.0

	// fallbackBandwidth is used when the sample has no spread
	fallbackBandwidth = 1.0
)

var standardNormal = distuv.Normal{Mu: 0, Sigma: 1}

// ScottBandwidth returns sigma * n^(-1/5) using the sample standard deviation
func ScottBandwidth(xs []float64) float64 {
	if len(xs) < 2 {
		return fallbackBandwidth
	}
	sigma := stat.StdDev(xs, nil)
	if sigma == 0 || math.IsNaN(sigma) {
		return fallbackBandwidth
	}
	return sigma * math.Pow(float64(len(xs)), -0.2)
}

// GaussianKDE evaluates a Gaussian kernel density estimate of xs on an
// evenly spaced grid spanning the data plus three bandwidths on each side.
func GaussianKDE(xs []float64, gridSize int) entities.DensityEstimate {
	if len(xs) == 0 || gridSize < 2 {
		return entities.DensityEstimate{Points: []entities.DensityPoint{}}
	}

	h := ScottBandwidth(xs)
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	lo -= densityCut * h
	hi += densityCut * h
	step := (hi - lo) / float64(gridSize-1)

	n := float64(len(xs))
	points := make([]entities.DensityPoint, gridSize)
	for i := range points {
		x := lo + float64(i)*step
		var sum float64
		for _, xi := range xs {
			sum += standardNormal.Prob((x - xi) / h)
		}
		points[i] = entities.DensityPoint{X: x, Density: sum / (n * h)}
	}

	return entities.DensityEstimate{Bandwidth: h, Points: points}
}
