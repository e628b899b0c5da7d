package curve

import "rateCurves/internal/domain"

// OutOfRangeMode selects what a query outside the point span returns.
type OutOfRangeMode string

const (
	// OutOfRangeZero returns a zero rate outside the span.
	OutOfRangeZero OutOfRangeMode = "zero"
	// OutOfRangeExtrapolate extends the nearest segment's slope.
	OutOfRangeExtrapolate OutOfRangeMode = "extrapolate"
)

// InterpolateAt returns the linearly interpolated rate at x. Queries outside
// the span of points yield 0. The caller's slice is never reordered.
func InterpolateAt(points domain.PointSequence, x float64) float64 {
	return interpolateSorted(points.Sorted(), x, OutOfRangeZero)
}

// interpolateSorted expects points in ascending x order.
//
// The first adjacent pair with x0 <= x <= x1 wins. A query landing exactly on
// a node returns that node's y; a zero-width pair returns the later y.
func interpolateSorted(sorted domain.PointSequence, x float64, mode OutOfRangeMode) float64 {
	if len(sorted) == 1 && sorted[0].X == x {
		return sorted[0].Y
	}
	for i := 1; i < len(sorted); i++ {
		p0, p1 := sorted[i-1], sorted[i]
		if x < p0.X || x > p1.X {
			continue
		}
		switch x {
		case p1.X:
			return p1.Y
		case p0.X:
			return p0.Y
		}
		return lerp(p0, p1, x)
	}
	if mode == OutOfRangeExtrapolate {
		return extrapolate(sorted, x)
	}
	return 0
}

func lerp(p0, p1 domain.Point, x float64) float64 {
	return p0.Y + (p1.Y-p0.Y)*(x-p0.X)/(p1.X-p0.X)
}

// extrapolate continues the first or last non-degenerate segment past the
// span. With fewer than two distinct x values the nearest y is held flat.
func extrapolate(sorted domain.PointSequence, x float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	first, last := sorted.First(), sorted.Last()
	if x < first.X {
		for _, p := range sorted[1:] {
			if p.X != first.X {
				return lerp(first, p, x)
			}
		}
		return first.Y
	}
	for i := len(sorted) - 2; i >= 0; i-- {
		if sorted[i].X != last.X {
			return lerp(sorted[i], last, x)
		}
	}
	return last.Y
}
