package render

import (
	"context"
	"fmt"
	"sync"

	"rateCurves/internal/curve"
	"rateCurves/internal/domain"
	"rateCurves/internal/ports"
)

// Chart is the full output of one render pass.
type Chart struct {
	Range   domain.Range           `json:"range"`
	Series  []domain.RenderedCurve `json:"series"`
	Markers []domain.Marker        `json:"markers"`
	Legend  Legend                 `json:"legend"`
}

// Renderer turns catalog definitions into labelled chart series.
type Renderer struct {
	engine *curve.Engine
	pres   Presentation
	logger ports.Logger
}

// NewRenderer validates the presentation and wires the engine.
func NewRenderer(engine *curve.Engine, pres Presentation, logger ports.Logger) (*Renderer, error) {
	if engine == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for Renderer")
	}
	pres.Normalize()
	if err := pres.Validate(); err != nil {
		return nil, fmt.Errorf("presentation: %v: %w", err, ports.ErrConfigurationError)
	}
	return &Renderer{engine: engine, pres: pres, logger: logger}, nil
}

// Presentation returns the normalized presentation in use.
func (r *Renderer) Presentation() Presentation {
	return r.pres
}

type slotResult struct {
	series  []domain.RenderedCurve
	markers []domain.Marker
	err     error
}

// Render draws every definition into its own slot. Slots are computed
// concurrently; output keeps slot order.
func (r *Renderer) Render(ctx context.Context, defs []*domain.CurveDefinition, rng domain.Range) (*Chart, error) {
	if err := curve.ValidateRange(rng, r.engine.Options().Strict); err != nil {
		return nil, err
	}

	results := make([]slotResult, len(defs))
	var wg sync.WaitGroup
	for i, def := range defs {
		wg.Add(1)
		go func(slot int, def *domain.CurveDefinition) {
			defer wg.Done()
			series, markers, err := r.RenderSlot(ctx, slot, def, rng)
			results[slot] = slotResult{series: series, markers: markers, err: err}
		}(i, def)
	}
	wg.Wait()

	chart := &Chart{
		Range:   rng,
		Series:  make([]domain.RenderedCurve, 0, 2*len(defs)),
		Markers: make([]domain.Marker, 0),
		Legend:  r.pres.Legend(),
	}
	for slot, res := range results {
		if res.err != nil {
			return nil, fmt.Errorf("slot %d: %w", slot+1, res.err)
		}
		chart.Series = append(chart.Series, res.series...)
		chart.Markers = append(chart.Markers, res.markers...)
	}
	r.logger.Debug(ctx, "Chart rendered", map[string]interface{}{
		"curves": len(defs), "series": len(chart.Series), "markers": len(chart.Markers),
		"lower": rng.Lower, "upper": rng.Upper,
	})
	return chart, nil
}

// RenderSlot produces the series and markers of a single definition.
func (r *Renderer) RenderSlot(ctx context.Context, slot int, def *domain.CurveDefinition, rng domain.Range) ([]domain.RenderedCurve, []domain.Marker, error) {
	if def == nil {
		return nil, nil, fmt.Errorf("no curve selected: %w", ports.ErrInvalidRequest)
	}
	points, err := r.engine.Build(def)
	if err != nil {
		return nil, nil, err
	}
	borrow, lend, err := r.engine.BorrowAndLend(points, rng)
	if err != nil {
		return nil, nil, fmt.Errorf("curve %s: %w", def.Name, err)
	}

	color := r.pres.ColorFor(slot)
	withFee := r.pres.ApplyProtocolFee && def.ProtocolFee != nil

	series := make([]domain.RenderedCurve, 0, 3)
	series = append(series, r.series(def, domain.KindBorrow, borrow, color))
	if withFee {
		series = append(series, r.series(def, domain.KindBorrowFee, curve.ApplyProtocolFee(borrow, def.Fee()), color))
	}
	series = append(series, r.series(def, domain.KindLend, lend, color))

	var markers []domain.Marker
	if r.pres.ShowMarkers && def.HasCurrentUtilization() {
		u := *def.CurrentUtilization
		if u < rng.Lower || u > rng.Upper {
			r.logger.Warn(ctx, "Current utilization outside chart range, marker skipped", map[string]interface{}{
				"curve": def.Name, "utilization": u,
			})
		} else {
			markers = append(markers, r.marker(def, domain.KindBorrow, r.engine.Marker(points, u), color))
			if withFee {
				markers = append(markers, r.marker(def, domain.KindBorrowFee, r.engine.FeeMarker(points, u, def.Fee()), color))
			}
			markers = append(markers, r.marker(def, domain.KindLend, r.engine.LendMarker(points, u), color))
		}
	}
	return series, markers, nil
}

func (r *Renderer) series(def *domain.CurveDefinition, kind domain.CurveKind, data domain.PointSequence, color string) domain.RenderedCurve {
	return domain.RenderedCurve{
		Label:       Label(def.Name, kind, r.pres.SmallLayout),
		Curve:       def.Name,
		Kind:        kind,
		Data:        data,
		Color:       color,
		StrokeWidth: r.pres.width(r.strokeWidth(kind)),
	}
}

func (r *Renderer) marker(def *domain.CurveDefinition, kind domain.CurveKind, p domain.Point, color string) domain.Marker {
	if r.pres.MarkerColor != "" {
		color = r.pres.MarkerColor
	}
	return domain.Marker{
		Label: Label(def.Name, kind, r.pres.SmallLayout) + " @ current",
		Curve: def.Name,
		Kind:  kind,
		Point: p,
		Color: color,
	}
}

func (r *Renderer) strokeWidth(kind domain.CurveKind) float64 {
	switch kind {
	case domain.KindLend:
		return r.pres.StrokeWidths.Lend
	case domain.KindBorrowFee:
		return r.pres.StrokeWidths.BorrowFee
	default:
		return r.pres.StrokeWidths.Borrow
	}
}

// Label names a series for the legend, e.g. "USDC (Borrow)".
func Label(name string, kind domain.CurveKind, short bool) string {
	if short {
		switch kind {
		case domain.KindLend:
			return name + " L"
		case domain.KindBorrowFee:
			return name + " B+fee"
		default:
			return name + " B"
		}
	}
	switch kind {
	case domain.KindLend:
		return name + " (Lend)"
	case domain.KindBorrowFee:
		return name + " (Borrow + fee)"
	default:
		return name + " (Borrow)"
	}
}
