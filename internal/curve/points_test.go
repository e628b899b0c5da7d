package curve

import (
	"testing"

	"rateCurves/internal/domain"
)

func TestBuildPoints(t *testing.T) {
	tests := []struct {
		name     string
		def      *domain.CurveDefinition
		expected domain.PointSequence
	}{
		{
			name: "paired nodes",
			def:  &domain.CurveDefinition{Name: "stable", X: []float64{90}, Y: []float64{7.5}, MaxRate: 30},
			expected: domain.PointSequence{
				{X: 0, Y: 0}, {X: 90, Y: 7.5}, {X: 100, Y: 30},
			},
		},
		{
			name: "trailing x dropped",
			def:  &domain.CurveDefinition{Name: "uneven", X: []float64{50, 80, 95}, Y: []float64{4, 8}, MaxRate: 60},
			expected: domain.PointSequence{
				{X: 0, Y: 0}, {X: 50, Y: 4}, {X: 80, Y: 8}, {X: 100, Y: 60},
			},
		},
		{
			name: "trailing y dropped",
			def:  &domain.CurveDefinition{Name: "uneven", X: []float64{50}, Y: []float64{4, 8, 9}, MaxRate: 60},
			expected: domain.PointSequence{
				{X: 0, Y: 0}, {X: 50, Y: 4}, {X: 100, Y: 60},
			},
		},
		{
			name: "endpoint nodes still anchored",
			def:  &domain.CurveDefinition{Name: "covered", X: []float64{0, 100}, Y: []float64{2, 25}, MaxRate: 30},
			expected: domain.PointSequence{
				{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 100, Y: 25}, {X: 100, Y: 30},
			},
		},
		{
			name: "unsorted nodes passed through",
			def:  &domain.CurveDefinition{Name: "messy", X: []float64{70, 20, 120}, Y: []float64{5, 1, 9}, MaxRate: 10},
			expected: domain.PointSequence{
				{X: 0, Y: 0}, {X: 70, Y: 5}, {X: 20, Y: 1}, {X: 120, Y: 9}, {X: 100, Y: 10},
			},
		},
		{
			name:     "no nodes",
			def:      &domain.CurveDefinition{Name: "flat", MaxRate: 12},
			expected: domain.PointSequence{{X: 0, Y: 0}, {X: 100, Y: 12}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildPoints(tt.def)
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d points, got %d: %v", len(tt.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Point %d: expected %+v, got %+v", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestBuildPoints_AlwaysAnchored(t *testing.T) {
	defs := []*domain.CurveDefinition{
		{Name: "a", X: []float64{10, 20}, Y: []float64{1, 2}, MaxRate: 50},
		{Name: "b", X: []float64{100}, Y: []float64{99}, MaxRate: 3},
		{Name: "c", MaxRate: 0},
		nil,
	}
	for _, def := range defs {
		points := BuildPoints(def)
		want := 0.0
		if def != nil {
			want = def.MaxRate
		}
		if points.First() != (domain.Point{X: 0, Y: 0}) {
			t.Errorf("Expected first anchor (0,0), got %+v", points.First())
		}
		if points.Last() != (domain.Point{X: 100, Y: want}) {
			t.Errorf("Expected last anchor (100,%g), got %+v", want, points.Last())
		}
	}
}
