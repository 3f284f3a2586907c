package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/vendorrisk/pkg/domain/entities"
)

func TestEstimate_Descriptors(t *testing.T) {
	t.Parallel()

	d := day(2024, 1, 1)
	view := viewOf(rec("V1", 2, d), rec("V1", -1, d), rec("V1", 0, d), rec("V1", 0, d), rec("V2", 10, d))

	dist, err := Estimate(view, "V1")
	require.NoError(t, err)

	assert.Equal(t, 4, dist.Records)
	assert.InDelta(t, 0.25, dist.AvgDelay, 1e-9)
	assert.InDelta(t, 25.0, dist.LatePct, 1e-9)
	assert.InDelta(t, 50.0, dist.ZeroPct, 1e-9)
}

func TestEstimate_MassFunction(t *testing.T) {
	t.Parallel()

	d := day(2024, 1, 1)
	view := viewOf(rec("V1", 3, d), rec("V1", -2, d), rec("V1", 3, d), rec("V1", 0, d), rec("V1", 3, d))

	dist, err := Estimate(view, "V1")
	require.NoError(t, err)

	assert.Equal(t, []entities.MassPoint{
		{DelayDays: -2, Probability: 0.2},
		{DelayDays: 0, Probability: 0.2},
		{DelayDays: 3, Probability: 0.6},
	}, dist.Mass)

	var total float64
	for _, p := range dist.Mass {
		assert.GreaterOrEqual(t, p.Probability, 0.0)
		total += p.Probability
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestEstimate_DensityIntegratesToOne(t *testing.T) {
	t.Parallel()

	d := day(2024, 1, 1)
	var records []entities.DeliveryRecord
	for _, delay := range []int{-3, -1, 0, 0, 1, 2, 2, 4, 7, 12} {
		records = append(records, rec("V1", delay, d))
	}

	dist, err := Estimate(viewOf(records...), "V1")
	require.NoError(t, err)
	require.Len(t, dist.Density.Points, DensityGridSize)
	assert.Greater(t, dist.Density.Bandwidth, 0.0)

	// trapezoidal integration over the grid
	var area float64
	pts := dist.Density.Points
	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].X, pts[i-1].X)
		assert.GreaterOrEqual(t, pts[i].Density, 0.0)
		area += (pts[i].X - pts[i-1].X) * (pts[i].Density + pts[i-1].Density) / 2
	}
	assert.InDelta(t, 1.0, area, 0.01)
}

func TestEstimate_SingleRecordUsesFallbackBandwidth(t *testing.T) {
	t.Parallel()

	dist, err := Estimate(viewOf(rec("V1", 4, day(2024, 1, 1))), "V1")
	require.NoError(t, err)

	assert.InDelta(t, fallbackBandwidth, dist.Density.Bandwidth, 1e-12)
	assert.Equal(t, []entities.MassPoint{{DelayDays: 4, Probability: 1}}, dist.Mass)
	assert.InDelta(t, 100.0, dist.LatePct, 1e-9)
}

func TestEstimate_EmptyDrillDown(t *testing.T) {
	t.Parallel()

	_, err := Estimate(viewOf(rec("V1", 1, day(2024, 1, 1))), "V9")
	require.ErrorIs(t, err, ErrEmptyDrillDown)

	_, err = Estimate(nil, "V1")
	require.ErrorIs(t, err, ErrEmptyDrillDown)
}

func TestScottBandwidth(t *testing.T) {
	t.Parallel()

	// sample stddev of {1,2,3,4,5} is sqrt(2.5)
	h := ScottBandwidth([]float64{1, 2, 3, 4, 5})
	assert.InDelta(t, 1.5811388300841898*0.7247796636776955, h, 1e-9)

	assert.Equal(t, fallbackBandwidth, ScottBandwidth([]float64{2, 2, 2}))
	assert.Equal(t, fallbackBandwidth, ScottBandwidth(nil))
}

func TestDistinct(t *testing.T) {
	t.Parallel()

	records := []entities.DeliveryRecord{
		{MaterialID: "M2", VendorID: "V1", Location: "B"},
		{MaterialID: "M1", VendorID: "V2", Location: "A"},
		{MaterialID: "M2", VendorID: "V1", Location: "A"},
	}

	assert.Equal(t, []string{"M1", "M2"}, Distinct(records, FieldMaterial))
	assert.Equal(t, []string{"A", "B"}, Distinct(records, FieldLocation))
	assert.Equal(t, []string{"V1", "V2"}, Distinct(records, FieldVendor))
	assert.Empty(t, Distinct(nil, FieldMaterial))
}
