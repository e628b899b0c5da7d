package curve

import (
	"fmt"

	"rateCurves/internal/domain"
)

// Options tune the engine. The zero value is usable and matches the
// permissive defaults of the package-level functions.
type Options struct {
	Resolution       int            // Samples per resampled curve, minus one
	OutOfRange       OutOfRangeMode // Behaviour outside the point span
	Strict           bool           // Validate definitions and ranges before use
	ReserveFactorBps uint64         // Share of interest withheld from lenders, in basis points
}

// DefaultOptions returns the permissive configuration.
func DefaultOptions() Options {
	return Options{
		Resolution: DefaultResolution,
		OutOfRange: OutOfRangeZero,
	}
}

// Engine applies Options to the curve operations. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	opts Options
}

// NewEngine creates an engine, filling unset options with defaults.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Resolution < 0 {
		return nil, fmt.Errorf("resolution %d must not be negative", opts.Resolution)
	}
	if opts.Resolution == 0 {
		opts.Resolution = DefaultResolution
	}
	switch opts.OutOfRange {
	case "":
		opts.OutOfRange = OutOfRangeZero
	case OutOfRangeZero, OutOfRangeExtrapolate:
	default:
		return nil, fmt.Errorf("unsupported out-of-range mode: %s", opts.OutOfRange)
	}
	if opts.ReserveFactorBps > 10_000 {
		return nil, fmt.Errorf("reserve factor %d bps exceeds 10000", opts.ReserveFactorBps)
	}
	return &Engine{opts: opts}, nil
}

// Options returns the effective configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// Build returns the anchored point sequence for def, validating it first in
// strict mode.
func (e *Engine) Build(def *domain.CurveDefinition) (domain.PointSequence, error) {
	if e.opts.Strict {
		if err := ValidateDefinition(def); err != nil {
			return nil, err
		}
	}
	return BuildPoints(def), nil
}

// RateAt interpolates a single rate.
func (e *Engine) RateAt(points domain.PointSequence, x float64) float64 {
	return interpolateSorted(points.Sorted(), x, e.opts.OutOfRange)
}

// Resample samples points across rng at the configured resolution.
func (e *Engine) Resample(points domain.PointSequence, rng domain.Range) (domain.PointSequence, error) {
	if err := ValidateRange(rng, e.opts.Strict); err != nil {
		return nil, err
	}
	return resample(points, rng.Lower, rng.Upper, e.opts.Resolution, e.opts.OutOfRange)
}

// BorrowAndLend resamples the borrow curve over rng and derives its lend curve.
func (e *Engine) BorrowAndLend(points domain.PointSequence, rng domain.Range) (borrow, lend domain.PointSequence, err error) {
	borrow, err = e.Resample(points, rng)
	if err != nil {
		return nil, nil, err
	}
	return borrow, DeriveLend(borrow, e.opts.ReserveFactorBps), nil
}

// Marker locates utilization on the borrow curve.
func (e *Engine) Marker(points domain.PointSequence, utilization float64) domain.Point {
	return domain.Point{X: utilization, Y: e.RateAt(points, utilization)}
}

// LendMarker locates utilization on the derived lend curve.
func (e *Engine) LendMarker(points domain.PointSequence, utilization float64) domain.Point {
	rate := e.RateAt(points, utilization)
	return domain.Point{X: utilization, Y: lendRate(rate, utilization, e.opts.ReserveFactorBps)}
}

// FeeMarker locates utilization on the fee-adjusted borrow curve.
func (e *Engine) FeeMarker(points domain.PointSequence, utilization, feePct float64) domain.Point {
	m := e.Marker(points, utilization)
	m.Y = FeeAdjustedRate(m.Y, feePct)
	return m
}
