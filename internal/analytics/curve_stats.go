package analytics

import (
	"math"

	"rateCurves/internal/domain"
)

// slopeTolerance is the relative slope change below which two segments are
// treated as one straight line.
const slopeTolerance = 1e-6

// CurveMetrics summarizes the shape of a rate curve.
type CurveMetrics struct {
	Samples   int
	StartRate float64
	EndRate   float64
	MinRate   float64
	MaxRate   float64
	MeanRate  float64 // Width-weighted average, i.e. area under the curve over its span

	SteepestSegment Segment
	Kinks           []domain.Point // Points where the slope changes
	Declines        []Decline      // Stretches where the rate falls as utilization rises
}

// Segment is one straight piece between two consecutive points.
type Segment struct {
	From  domain.Point
	To    domain.Point
	Slope float64 // Rate percent per utilization percent
}

// Decline is a run where the rate falls below its running peak.
type Decline struct {
	StartX    float64
	EndX      float64
	PeakRate  float64
	Depth     float64 // Largest drop below PeakRate within the run
	Recovered bool    // Whether the rate climbed back to PeakRate before the curve ended
}

// AnalyzeCurve computes metrics over points taken in order. Feed it a built
// or resampled sequence; unsorted input is analyzed as given.
func AnalyzeCurve(points domain.PointSequence) *CurveMetrics {
	metrics := &CurveMetrics{
		Samples:  len(points),
		Kinks:    make([]domain.Point, 0),
		Declines: make([]Decline, 0),
	}
	if len(points) == 0 {
		return metrics
	}

	first, last := points[0], points[len(points)-1]
	metrics.StartRate, metrics.EndRate = first.Y, last.Y
	metrics.MinRate, metrics.MaxRate = first.Y, first.Y
	if len(points) == 1 {
		metrics.MeanRate = first.Y
		return metrics
	}

	var area float64
	var prevSlope float64
	havePrev := false
	peak := first.Y
	var current *Decline

	for i := 1; i < len(points); i++ {
		p0, p1 := points[i-1], points[i]
		metrics.MinRate = math.Min(metrics.MinRate, p1.Y)
		metrics.MaxRate = math.Max(metrics.MaxRate, p1.Y)

		dx := p1.X - p0.X
		area += (p0.Y + p1.Y) / 2 * dx
		if dx == 0 {
			continue
		}

		slope := (p1.Y - p0.Y) / dx
		if math.Abs(slope) > math.Abs(metrics.SteepestSegment.Slope) {
			metrics.SteepestSegment = Segment{From: p0, To: p1, Slope: slope}
		}
		if havePrev && !sameSlope(prevSlope, slope) {
			metrics.Kinks = append(metrics.Kinks, p0)
		}
		prevSlope, havePrev = slope, true

		// Decline tracking
		if p1.Y >= peak {
			if current != nil {
				current.EndX = p1.X
				current.Recovered = true
				metrics.Declines = append(metrics.Declines, *current)
				current = nil
			}
			peak = p1.Y
			continue
		}
		if current == nil {
			current = &Decline{StartX: p0.X, PeakRate: peak}
		}
		current.EndX = p1.X
		current.Depth = math.Max(current.Depth, peak-p1.Y)
	}
	if current != nil {
		metrics.Declines = append(metrics.Declines, *current)
	}

	if width := last.X - first.X; width != 0 {
		metrics.MeanRate = area / width
	} else {
		metrics.MeanRate = (metrics.MinRate + metrics.MaxRate) / 2
	}
	return metrics
}

// MeanSpread averages borrow minus lend over samples sharing an index. The
// two sequences are expected to come from the same resample.
func MeanSpread(borrow, lend domain.PointSequence) float64 {
	n := min(len(borrow), len(lend))
	if n == 0 {
		return 0
	}
	var total float64
	for i := 0; i < n; i++ {
		total += borrow[i].Y - lend[i].Y
	}
	return total / float64(n)
}

// IsMonotonic reports whether the rate never falls as utilization rises.
func (m *CurveMetrics) IsMonotonic() bool {
	return len(m.Declines) == 0
}

func sameSlope(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= slopeTolerance*scale
}
