package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rateCurves/internal/domain"
)

func TestGenerateBorrowAndLend(t *testing.T) {
	borrow, lend, err := GenerateBorrowAndLend(scenarioPoints, domain.DefaultRange)
	require.NoError(t, err)
	require.Len(t, lend, len(borrow))

	for i := range borrow {
		assert.Equal(t, borrow[i].X, lend[i].X)
		assert.Equal(t, borrow[i].Y*borrow[i].X/100, lend[i].Y)
	}
	assert.Equal(t, domain.Point{X: 100, Y: 30}, lend.Last())
}

func TestGenerateBorrowAndLend_InvalidRange(t *testing.T) {
	borrow, lend, err := GenerateBorrowAndLend(scenarioPoints, domain.Range{Lower: 90, Upper: 10})
	assert.Error(t, err)
	assert.Nil(t, borrow)
	assert.Nil(t, lend)
}

func TestDeriveLend_ReserveFactor(t *testing.T) {
	borrow := domain.PointSequence{{X: 0, Y: 2}, {X: 50, Y: 10}, {X: 100, Y: 40}}

	tests := []struct {
		name     string
		bps      uint64
		expected []float64
	}{
		{name: "no reserve", bps: 0, expected: []float64{0, 5, 40}},
		{name: "ten percent reserve", bps: 1000, expected: []float64{0, 4.5, 36}},
		{name: "everything withheld", bps: 10_000, expected: []float64{0, 0, 0}},
		{name: "over-withheld clamps", bps: 20_000, expected: []float64{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lend := DeriveLend(borrow, tt.bps)
			require.Len(t, lend, len(tt.expected))
			for i, want := range tt.expected {
				assert.Equal(t, borrow[i].X, lend[i].X)
				assert.InDelta(t, want, lend[i].Y, 1e-12)
			}
		})
	}
}

func TestFeeAdjustedRate(t *testing.T) {
	assert.InDelta(t, 10.5, FeeAdjustedRate(10, 5), 1e-12)
	assert.Equal(t, 10.0, FeeAdjustedRate(10, 0))
	assert.Equal(t, 0.0, FeeAdjustedRate(0, 25))
}

func TestApplyProtocolFee(t *testing.T) {
	borrow := domain.PointSequence{{X: 80, Y: 10}, {X: 90, Y: 20}}

	adjusted := ApplyProtocolFee(borrow, 5)

	require.Len(t, adjusted, 2)
	assert.Equal(t, 80.0, adjusted[0].X)
	assert.InDelta(t, 10.5, adjusted[0].Y, 1e-12)
	assert.InDelta(t, 21.0, adjusted[1].Y, 1e-12)
	assert.Equal(t, 10.0, borrow[0].Y, "input must be left untouched")
}

func TestFeeAdjustedMarker_AgreesWithResampledCurve(t *testing.T) {
	points := BuildPoints(&domain.CurveDefinition{
		Name: "fee", X: []float64{45, 80}, Y: []float64{3, 11.25}, MaxRate: 80,
	})
	const fee = 12.5

	for _, u := range []float64{40, 55.5, 80, 97.25} {
		borrow, _, err := GenerateBorrowAndLend(points, domain.Range{Lower: u, Upper: 100})
		require.NoError(t, err)
		adjusted := ApplyProtocolFee(borrow, fee)

		marker := FeeAdjustedMarker(points, u, fee)
		assert.Equal(t, u, marker.X)
		assert.InDelta(t, adjusted.First().Y, marker.Y, 1e-9, "utilization %v", u)
	}

	// A grid sample inside the window must agree as well.
	borrow, _, err := GenerateBorrowAndLend(points, domain.Range{Lower: 0, Upper: 100})
	require.NoError(t, err)
	adjusted := ApplyProtocolFee(borrow, fee)
	sample := adjusted[625] // x = 62.5
	assert.InDelta(t, FeeAdjustedMarker(points, sample.X, fee).Y, sample.Y, 1e-9)
}

func TestMarkerAt(t *testing.T) {
	assert.Equal(t, domain.Point{X: 95, Y: 18.75}, MarkerAt(scenarioPoints, 95))
	assert.Equal(t, domain.Point{X: 120, Y: 0}, MarkerAt(scenarioPoints, 120))
}

func TestLendMarkerAt(t *testing.T) {
	m := LendMarkerAt(scenarioPoints, 95)
	assert.Equal(t, 95.0, m.X)
	assert.InDelta(t, 18.75*95/100, m.Y, 1e-12)
}
