package curve

import (
	"math"

	"rateCurves/internal/domain"
)

// DefaultResolution is the number of steps used when none is given.
const DefaultResolution = 1000

// Resample produces resolution+1 evenly spaced samples covering [lower, upper]
// inclusive. Boundary values missing from points are interpolated and added
// to the working set first. A zero-width range yields one sample. A
// resolution <= 0 falls back to DefaultResolution.
func Resample(points domain.PointSequence, lower, upper float64, resolution int) (domain.PointSequence, error) {
	return resample(points, lower, upper, resolution, OutOfRangeZero)
}

func resample(points domain.PointSequence, lower, upper float64, resolution int, mode OutOfRangeMode) (domain.PointSequence, error) {
	if err := checkBounds(lower, upper); err != nil {
		return nil, err
	}
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	working := points.Clone()
	if !working.HasX(lower) {
		working = append(working, domain.Point{X: lower, Y: interpolateSorted(working.Sorted(), lower, mode)})
	}
	if !working.HasX(upper) {
		working = append(working, domain.Point{X: upper, Y: interpolateSorted(working.Sorted(), upper, mode)})
	}
	sorted := working.Sorted()

	if lower == upper {
		return domain.PointSequence{{X: lower, Y: interpolateSorted(sorted, lower, mode)}}, nil
	}

	// x is derived from the index rather than accumulated, so the grid does
	// not drift and the last sample lands on upper exactly.
	step := (upper - lower) / float64(resolution)
	out := make(domain.PointSequence, 0, resolution+1)
	for i := 0; i < resolution; i++ {
		x := lower + float64(i)*step
		out = append(out, domain.Point{X: x, Y: interpolateSorted(sorted, x, mode)})
	}
	out = append(out, domain.Point{X: upper, Y: interpolateSorted(sorted, upper, mode)})
	return out, nil
}

func checkBounds(lower, upper float64) error {
	switch {
	case math.IsNaN(lower) || math.IsNaN(upper):
		return &InvalidRangeError{Lower: lower, Upper: upper, Reason: "bounds must be numbers"}
	case math.IsInf(lower, 0) || math.IsInf(upper, 0):
		return &InvalidRangeError{Lower: lower, Upper: upper, Reason: "bounds must be finite"}
	case lower > upper:
		return &InvalidRangeError{Lower: lower, Upper: upper, Reason: "lower exceeds upper"}
	}
	return nil
}
