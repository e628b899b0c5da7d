package app

import (
	"context"
	"fmt"
	"strings"

	"rateCurves/config"
	"rateCurves/internal/analytics"
	"rateCurves/internal/curve"
	"rateCurves/internal/domain"
	"rateCurves/internal/ports"
	"rateCurves/internal/render"
)

// defaultSlots is how many curves are drawn when none are named.
const defaultSlots = 2

// CurveService orchestrates catalog lookup, rendering and export.
type CurveService struct {
	cfg      *config.Config
	logger   ports.Logger
	catalog  ports.CatalogSource
	engine   *curve.Engine
	renderer *render.Renderer
	exporter ports.CurveExporter
}

// NewCurveService creates a new application service instance.
func NewCurveService(
	cfg *config.Config,
	logger ports.Logger,
	catalog ports.CatalogSource,
	engine *curve.Engine,
	renderer *render.Renderer,
	exporter ports.CurveExporter,
) (*CurveService, error) {
	if cfg == nil || logger == nil || catalog == nil || engine == nil || renderer == nil || exporter == nil {
		return nil, fmt.Errorf("missing required dependencies for CurveService")
	}
	return &CurveService{
		cfg:      cfg,
		logger:   logger,
		catalog:  catalog,
		engine:   engine,
		renderer: renderer,
		exporter: exporter,
	}, nil
}

// SelectCurves resolves names against the catalog. With no names the first
// two catalog entries fill the slots.
func (s *CurveService) SelectCurves(ctx context.Context, names []string) ([]*domain.CurveDefinition, error) {
	catalog, err := s.catalog.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load curve catalog: %w", err)
	}
	if len(catalog) == 0 {
		return nil, ports.ErrCatalogEmpty
	}

	if len(names) == 0 {
		n := min(defaultSlots, len(catalog))
		return catalog[:n], nil
	}

	byName := make(map[string]*domain.CurveDefinition, len(catalog))
	for _, def := range catalog {
		if _, seen := byName[def.Name]; !seen {
			byName[def.Name] = def
		}
	}
	selected := make([]*domain.CurveDefinition, 0, len(names))
	for _, name := range names {
		def, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("curve %q: %w", name, ports.ErrNotFound)
		}
		selected = append(selected, def)
	}
	return selected, nil
}

// Draw renders the configured curve slots over the configured range and
// exports the result. It returns the chart and the export location.
func (s *CurveService) Draw(ctx context.Context) (*render.Chart, string, error) {
	defs, err := s.SelectCurves(ctx, s.cfg.CurveNames)
	if err != nil {
		s.logger.Error(ctx, err, "Curve selection failed")
		return nil, "", err
	}

	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
	}
	s.logger.Info(ctx, "Rendering curves", map[string]interface{}{
		"curves": strings.Join(names, ","), "lower": s.cfg.Range.Lower, "upper": s.cfg.Range.Upper,
	})

	chart, err := s.renderer.Render(ctx, defs, s.cfg.Range)
	if err != nil {
		s.logger.Error(ctx, err, "Render failed")
		return nil, "", err
	}

	for _, series := range chart.Series {
		m := analytics.AnalyzeCurve(series.Data)
		s.logger.Info(ctx, "Curve summary", map[string]interface{}{
			"series": series.Label, "min": m.MinRate, "max": m.MaxRate, "mean": m.MeanRate,
			"kinks": len(m.Kinks), "monotonic": m.IsMonotonic(),
		})
	}

	path, err := s.exporter.Export(ctx, strings.Join(names, "_vs_"), chart.Series, chart.Markers)
	if err != nil {
		return nil, "", err
	}
	return chart, path, nil
}

// RateQuote is the rate picture of one curve at one utilization.
type RateQuote struct {
	Curve         string
	Utilization   float64
	Borrow        float64
	Lend          float64
	BorrowWithFee float64 // Equals Borrow when the curve has no protocol fee
	ProtocolFee   float64
}

// QuoteAt looks up a curve by name and evaluates it at utilization. A
// negative utilization uses the curve's current utilization.
func (s *CurveService) QuoteAt(ctx context.Context, name string, utilization float64) (*RateQuote, error) {
	defs, err := s.SelectCurves(ctx, []string{name})
	if err != nil {
		return nil, err
	}
	def := defs[0]

	if utilization < 0 {
		if !def.HasCurrentUtilization() {
			return nil, fmt.Errorf("curve %q has no current utilization: %w", name, ports.ErrInvalidRequest)
		}
		utilization = *def.CurrentUtilization
	}

	points, err := s.engine.Build(def)
	if err != nil {
		return nil, err
	}
	quote := &RateQuote{
		Curve:         def.Name,
		Utilization:   utilization,
		Borrow:        s.engine.Marker(points, utilization).Y,
		Lend:          s.engine.LendMarker(points, utilization).Y,
		BorrowWithFee: s.engine.FeeMarker(points, utilization, def.Fee()).Y,
		ProtocolFee:   def.Fee(),
	}
	s.logger.Debug(ctx, "Rate quoted", map[string]interface{}{
		"curve": quote.Curve, "utilization": quote.Utilization, "borrow": quote.Borrow, "lend": quote.Lend,
	})
	return quote, nil
}

// CurveProfile is the shape summary of one curve over the configured range.
type CurveProfile struct {
	Curve      string
	Range      domain.Range
	Borrow     *analytics.CurveMetrics
	Lend       *analytics.CurveMetrics
	MeanSpread float64
}

// Profile resamples a curve over the configured range and summarizes it.
func (s *CurveService) Profile(ctx context.Context, name string) (*CurveProfile, error) {
	defs, err := s.SelectCurves(ctx, []string{name})
	if err != nil {
		return nil, err
	}
	points, err := s.engine.Build(defs[0])
	if err != nil {
		return nil, err
	}
	borrow, lend, err := s.engine.BorrowAndLend(points, s.cfg.Range)
	if err != nil {
		return nil, err
	}
	return &CurveProfile{
		Curve:      defs[0].Name,
		Range:      s.cfg.Range,
		Borrow:     analytics.AnalyzeCurve(borrow),
		Lend:       analytics.AnalyzeCurve(lend),
		MeanSpread: analytics.MeanSpread(borrow, lend),
	}, nil
}

// ImportCatalog copies every definition from src into dst and returns how
// many were written. With strict set, invalid definitions abort the import
// before anything is written.
func ImportCatalog(ctx context.Context, logger ports.Logger, src ports.CatalogSource, dst ports.CatalogRepository, strict bool) (int, error) {
	defs, err := src.LoadCatalog(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load source catalog: %w", err)
	}
	if strict {
		for _, def := range defs {
			if err := curve.ValidateDefinition(def); err != nil {
				return 0, err
			}
		}
	}
	for i, def := range defs {
		if err := dst.Save(ctx, def); err != nil {
			return i, fmt.Errorf("failed to import curve %s: %w", def.Name, err)
		}
	}
	logger.Info(ctx, "Curve catalog imported", map[string]interface{}{"curves": len(defs)})
	return len(defs), nil
}
