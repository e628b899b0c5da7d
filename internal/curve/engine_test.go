package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rateCurves/internal/domain"
	"rateCurves/internal/ports"
)

func TestNewEngine(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		want    Options
		wantErr bool
	}{
		{name: "zero value gets defaults", opts: Options{}, want: DefaultOptions()},
		{
			name: "explicit options kept",
			opts: Options{Resolution: 50, OutOfRange: OutOfRangeExtrapolate, Strict: true, ReserveFactorBps: 1000},
			want: Options{Resolution: 50, OutOfRange: OutOfRangeExtrapolate, Strict: true, ReserveFactorBps: 1000},
		},
		{name: "negative resolution", opts: Options{Resolution: -1}, wantErr: true},
		{name: "unknown mode", opts: Options{OutOfRange: "clamp"}, wantErr: true},
		{name: "reserve over 100%", opts: Options{ReserveFactorBps: 10_001}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEngine(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Options())
		})
	}
}

func TestEngine_StrictBuild(t *testing.T) {
	malformed := &domain.CurveDefinition{Name: "bad", X: []float64{80, 40}, Y: []float64{5}, MaxRate: 30}

	permissive, err := NewEngine(Options{})
	require.NoError(t, err)
	points, err := permissive.Build(malformed)
	require.NoError(t, err)
	assert.Len(t, points, 3)

	strict, err := NewEngine(Options{Strict: true})
	require.NoError(t, err)
	_, err = strict.Build(malformed)
	assert.ErrorIs(t, err, ports.ErrInvalidCurve)
}

func TestEngine_StrictRange(t *testing.T) {
	strict, err := NewEngine(Options{Strict: true})
	require.NoError(t, err)

	_, err = strict.Resample(scenarioPoints, domain.Range{Lower: -5, Upper: 50})
	assert.ErrorIs(t, err, ports.ErrInvalidRange)

	_, _, err = strict.BorrowAndLend(scenarioPoints, domain.Range{Lower: 10, Upper: 5})
	assert.ErrorIs(t, err, ports.ErrInvalidRange)
}

func TestEngine_MatchesPackageFunctions(t *testing.T) {
	e, err := NewEngine(DefaultOptions())
	require.NoError(t, err)

	borrow, lend, err := e.BorrowAndLend(scenarioPoints, domain.DefaultRange)
	require.NoError(t, err)
	wantBorrow, wantLend, err := GenerateBorrowAndLend(scenarioPoints, domain.DefaultRange)
	require.NoError(t, err)

	assert.Equal(t, wantBorrow, borrow)
	assert.Equal(t, wantLend, lend)
	assert.Equal(t, MarkerAt(scenarioPoints, 95), e.Marker(scenarioPoints, 95))
	assert.Equal(t, LendMarkerAt(scenarioPoints, 95), e.LendMarker(scenarioPoints, 95))
	assert.Equal(t, FeeAdjustedMarker(scenarioPoints, 95, 5), e.FeeMarker(scenarioPoints, 95, 5))
}

func TestEngine_Resolution(t *testing.T) {
	e, err := NewEngine(Options{Resolution: 10})
	require.NoError(t, err)

	got, err := e.Resample(scenarioPoints, domain.Range{Lower: 0, Upper: 100})
	require.NoError(t, err)
	assert.Len(t, got, 11)
}

func TestEngine_Extrapolate(t *testing.T) {
	e, err := NewEngine(Options{OutOfRange: OutOfRangeExtrapolate})
	require.NoError(t, err)

	points := domain.PointSequence{{X: 20, Y: 2}, {X: 60, Y: 6}}
	assert.InDelta(t, 8.0, e.RateAt(points, 80), 1e-12)
	assert.InDelta(t, 0.5, e.RateAt(points, 5), 1e-12)

	got, err := e.Resample(points, domain.Range{Lower: 0, Upper: 80})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got.First().Y, 1e-12)
	assert.InDelta(t, 8.0, got.Last().Y, 1e-12)
}

func TestEngine_ReserveFactor(t *testing.T) {
	e, err := NewEngine(Options{ReserveFactorBps: 2000})
	require.NoError(t, err)

	_, lend, err := e.BorrowAndLend(scenarioPoints, domain.Range{Lower: 90, Upper: 100})
	require.NoError(t, err)
	assert.InDelta(t, 30*0.8, lend.Last().Y, 1e-12)
	assert.InDelta(t, 18.75*0.95*0.8, e.LendMarker(scenarioPoints, 95).Y, 1e-12)
}
