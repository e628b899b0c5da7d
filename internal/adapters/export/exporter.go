package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"rateCurves/internal/domain"
	"rateCurves/internal/ports"
	"rateCurves/internal/utils"
)

// Format selects the on-disk representation of rendered series.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts "csv" or "json", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q: %w", s, ports.ErrConfigurationError)
	}
}

// Config holds configuration for the file exporter.
type Config struct {
	Dir       string
	Format    Format
	Precision int32 // Decimals kept in CSV output
	Logger    ports.Logger
}

// Exporter implements ports.CurveExporter by writing files under Dir.
type Exporter struct {
	cfg Config
}

// New creates a file exporter.
func New(cfg Config) (*Exporter, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for exporter")
	}
	if cfg.Dir == "" {
		cfg.Dir = "./data/out"
	}
	if cfg.Format == "" {
		cfg.Format = FormatCSV
	}
	if _, err := ParseFormat(string(cfg.Format)); err != nil {
		return nil, err
	}
	return &Exporter{cfg: cfg}, nil
}

// document is the JSON layout handed to chart tools.
type document struct {
	Name    string                 `json:"name"`
	Curves  []domain.RenderedCurve `json:"curves"`
	Markers []domain.Marker        `json:"markers"`
}

// Export writes curves (and markers, when any) and returns the series file path.
func (e *Exporter) Export(ctx context.Context, name string, curves []domain.RenderedCurve, markers []domain.Marker) (string, error) {
	base := filepath.Join(e.cfg.Dir, slug(name))

	var path string
	var err error
	switch e.cfg.Format {
	case FormatJSON:
		path = base + ".json"
		err = writeJSON(path, document{Name: name, Curves: curves, Markers: nonNilMarkers(markers)})
	default:
		path = base + ".csv"
		err = utils.WriteCurvesToCSV(curves, path, e.cfg.Precision)
		if err == nil && len(markers) > 0 {
			err = utils.WriteMarkersToCSV(markers, base+"_markers.csv", e.cfg.Precision)
		}
	}
	if err != nil {
		err = fmt.Errorf("export %s: %v: %w", name, err, ports.ErrExportFailed)
		e.cfg.Logger.Error(ctx, err, "Export failed", map[string]interface{}{"path": path})
		return "", err
	}

	e.cfg.Logger.Info(ctx, "Rendered curves exported", map[string]interface{}{
		"path": path, "series": len(curves), "markers": len(markers),
	})
	return path, nil
}

func writeJSON(path string, doc document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func slug(name string) string {
	s := strings.Trim(unsafeChars.ReplaceAllString(name, "_"), "_")
	if s == "" {
		return "curves"
	}
	return s
}

func nonNilMarkers(m []domain.Marker) []domain.Marker {
	if m == nil {
		return []domain.Marker{}
	}
	return m
}
