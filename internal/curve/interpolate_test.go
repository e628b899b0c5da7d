package curve

import (
	"math"
	"math/rand"
	"testing"

	"rateCurves/internal/domain"
)

var scenarioPoints = domain.PointSequence{{X: 0, Y: 0}, {X: 90, Y: 7.5}, {X: 100, Y: 30}}

func TestInterpolateAt(t *testing.T) {
	tests := []struct {
		name     string
		points   domain.PointSequence
		x        float64
		expected float64
	}{
		{name: "steep segment", points: scenarioPoints, x: 95, expected: 18.75},
		{name: "shallow segment", points: scenarioPoints, x: 45, expected: 3.75},
		{name: "exact node", points: scenarioPoints, x: 90, expected: 7.5},
		{name: "lower anchor", points: scenarioPoints, x: 0, expected: 0},
		{name: "upper anchor", points: scenarioPoints, x: 100, expected: 30},
		{name: "below span", points: scenarioPoints, x: -1, expected: 0},
		{name: "above span", points: scenarioPoints, x: 100.5, expected: 0},
		{
			name:     "unsorted input",
			points:   domain.PointSequence{{X: 100, Y: 30}, {X: 0, Y: 0}, {X: 90, Y: 7.5}},
			x:        95,
			expected: 18.75,
		},
		{
			name:     "duplicate x returns later point",
			points:   domain.PointSequence{{X: 0, Y: 0}, {X: 50, Y: 4}, {X: 50, Y: 9}, {X: 100, Y: 20}},
			x:        50,
			expected: 4,
		},
		{
			name:     "duplicate anchor at zero",
			points:   domain.PointSequence{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 100, Y: 30}},
			x:        0,
			expected: 2,
		},
		{
			name:     "past a duplicate uses following segment",
			points:   domain.PointSequence{{X: 0, Y: 0}, {X: 50, Y: 4}, {X: 50, Y: 9}, {X: 100, Y: 19}},
			x:        75,
			expected: 14,
		},
		{name: "single point hit", points: domain.PointSequence{{X: 40, Y: 3}}, x: 40, expected: 3},
		{name: "single point miss", points: domain.PointSequence{{X: 40, Y: 3}}, x: 41, expected: 0},
		{name: "empty", points: nil, x: 10, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InterpolateAt(tt.points, tt.x)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestInterpolateAt_DoesNotReorderInput(t *testing.T) {
	points := domain.PointSequence{{X: 100, Y: 30}, {X: 0, Y: 0}, {X: 90, Y: 7.5}}
	original := points.Clone()

	InterpolateAt(points, 50)

	for i := range points {
		if points[i] != original[i] {
			t.Fatalf("Input reordered at %d: expected %+v, got %+v", i, original[i], points[i])
		}
	}
}

func TestInterpolateAt_ExactAtNodes(t *testing.T) {
	points := domain.PointSequence{{X: 0, Y: 0}, {X: 10, Y: 0.1}, {X: 30, Y: 0.3}, {X: 70, Y: 0.7000001}, {X: 100, Y: 3}}
	for _, p := range points {
		if got := InterpolateAt(points, p.X); got != p.Y {
			t.Errorf("At node x=%v expected exactly %v, got %v", p.X, p.Y, got)
		}
	}
}

func TestInterpolateAt_BoundedBySegment(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		def := &domain.CurveDefinition{MaxRate: rng.Float64() * 100}
		for i := 0; i < 1+rng.Intn(6); i++ {
			def.X = append(def.X, rng.Float64()*100)
			def.Y = append(def.Y, rng.Float64()*50)
		}
		points := BuildPoints(def)
		sorted := points.Sorted()

		x := rng.Float64() * 100
		got := InterpolateAt(points, x)

		for i := 1; i < len(sorted); i++ {
			p0, p1 := sorted[i-1], sorted[i]
			if x < p0.X || x > p1.X {
				continue
			}
			lo, hi := math.Min(p0.Y, p1.Y), math.Max(p0.Y, p1.Y)
			if got < lo-1e-9 || got > hi+1e-9 {
				t.Fatalf("Trial %d: rate %v at x=%v outside bracket [%v, %v]", trial, got, x, lo, hi)
			}
			break
		}
	}
}

func TestInterpolateAt_ZeroOutsideSpan(t *testing.T) {
	points := domain.PointSequence{{X: 20, Y: 5}, {X: 60, Y: 9}}
	for _, x := range []float64{-50, 0, 19.999, 60.001, 100, math.Inf(1)} {
		if got := InterpolateAt(points, x); got != 0 {
			t.Errorf("Expected 0 at x=%v, got %v", x, got)
		}
	}
}

func TestInterpolateSorted_Extrapolate(t *testing.T) {
	sorted := domain.PointSequence{{X: 0, Y: 0}, {X: 50, Y: 10}, {X: 100, Y: 30}}
	tests := []struct {
		name     string
		points   domain.PointSequence
		x        float64
		expected float64
	}{
		{name: "above span", points: sorted, x: 110, expected: 34},
		{name: "below span", points: sorted, x: -10, expected: -2},
		{name: "inside span unchanged", points: sorted, x: 75, expected: 20},
		{
			name:     "skips degenerate tail",
			points:   domain.PointSequence{{X: 0, Y: 0}, {X: 100, Y: 30}, {X: 100, Y: 40}},
			x:        110,
			expected: 44,
		},
		{name: "single point held flat", points: domain.PointSequence{{X: 50, Y: 6}}, x: 80, expected: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := interpolateSorted(tt.points, tt.x, OutOfRangeExtrapolate)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
