package curve

import "rateCurves/internal/domain"

// GenerateBorrowAndLend resamples points over rng into the borrow curve and
// derives the lend curve from it. Each lend sample shares its borrow sample's
// x and earns the borrow rate prorated by utilization: y * x / 100.
func GenerateBorrowAndLend(points domain.PointSequence, rng domain.Range) (borrow, lend domain.PointSequence, err error) {
	borrow, err = Resample(points, rng.Lower, rng.Upper, DefaultResolution)
	if err != nil {
		return nil, nil, err
	}
	return borrow, DeriveLend(borrow, 0), nil
}

// DeriveLend maps a borrow curve onto the lend curve. reserveFactorBps keeps
// that share of interest for the protocol; zero gives the plain proration.
func DeriveLend(borrow domain.PointSequence, reserveFactorBps uint64) domain.PointSequence {
	lend := make(domain.PointSequence, len(borrow))
	for i, p := range borrow {
		lend[i] = domain.Point{X: p.X, Y: lendRate(p.Y, p.X, reserveFactorBps)}
	}
	return lend
}

func lendRate(borrowRate, utilization float64, reserveFactorBps uint64) float64 {
	rate := borrowRate * utilization / 100
	if reserveFactorBps == 0 {
		return rate
	}
	keep := 1 - float64(reserveFactorBps)/10_000
	if keep < 0 {
		keep = 0
	}
	return rate * keep
}

// FeeAdjustedRate applies a protocol fee, given in percent, to a base rate.
func FeeAdjustedRate(rate, feePct float64) float64 {
	return rate * (1 + feePct/100)
}

// ApplyProtocolFee returns a copy of seq with every rate fee-adjusted.
func ApplyProtocolFee(seq domain.PointSequence, feePct float64) domain.PointSequence {
	out := make(domain.PointSequence, len(seq))
	for i, p := range seq {
		out[i] = domain.Point{X: p.X, Y: FeeAdjustedRate(p.Y, feePct)}
	}
	return out
}

// MarkerAt locates a single point on the curve described by points.
func MarkerAt(points domain.PointSequence, utilization float64) domain.Point {
	return domain.Point{X: utilization, Y: InterpolateAt(points, utilization)}
}

// FeeAdjustedMarker queries the unresampled points and applies the fee, so
// it agrees with ApplyProtocolFee over a resampled curve at the same x.
func FeeAdjustedMarker(points domain.PointSequence, utilization, feePct float64) domain.Point {
	m := MarkerAt(points, utilization)
	m.Y = FeeAdjustedRate(m.Y, feePct)
	return m
}

// LendMarkerAt locates utilization on the lend curve derived from points.
func LendMarkerAt(points domain.PointSequence, utilization float64) domain.Point {
	m := MarkerAt(points, utilization)
	m.Y = lendRate(m.Y, utilization, 0)
	return m
}
