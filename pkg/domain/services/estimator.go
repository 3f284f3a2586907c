package services

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vsinha/vendorrisk/pkg/domain/entities"
)

// Estimate builds the delay distribution of one vendor from the view.
// The vendor must have at least one record in the view.
func Estimate(view *entities.FilteredView, vendor entities.VendorID) (*entities.VendorDistribution, error) {
	var delays []int
	if view != nil {
		view.Each(func(r entities.DeliveryRecord) {
			if r.VendorID == vendor {
				delays = append(delays, r.DelayDays)
			}
		})
	}
	if len(delays) == 0 {
		return nil, fmt.Errorf("%w: vendor %s", ErrEmptyDrillDown, vendor)
	}

	xs := make([]float64, len(delays))
	var late, zero int
	for i, d := range delays {
		xs[i] = float64(d)
		if d > 0 {
			late++
		} else if d == 0 {
			zero++
		}
	}
	n := float64(len(delays))

	return &entities.VendorDistribution{
		VendorID: vendor,
		Records:  len(delays),
		AvgDelay: stat.Mean(xs, nil),
		LatePct:  float64(late) / n * 100,
		ZeroPct:  float64(zero) / n * 100,
		Density:  GaussianKDE(xs, DensityGridSize),
		Mass:     ProbabilityMass(delays),
	}, nil
}

// ProbabilityMass returns the exact empirical PMF of delays in ascending order of delay
func ProbabilityMass(delays []int) []entities.MassPoint {
	counts := make(map[int]int)
	for _, d := range delays {
		counts[d]++
	}

	values := make([]int, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Ints(values)

	total := float64(len(delays))
	mass := make([]entities.MassPoint, len(values))
	for i, v := range values {
		mass[i] = entities.MassPoint{DelayDays: v, Probability: float64(counts[v]) / total}
	}
	return mass
}
