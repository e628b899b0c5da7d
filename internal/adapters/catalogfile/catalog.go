package catalogfile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"rateCurves/internal/domain"
	"rateCurves/internal/ports"
)

// Source reads a curve catalog from a JSON document: an array of curve
// definitions with fields name, token, x, y, max_rate, current_utilization
// and protocol_fee.
type Source struct {
	path   string
	logger ports.Logger
}

// NewSource creates a catalog source for the file at path.
func NewSource(path string, logger ports.Logger) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog path is required: %w", ports.ErrConfigurationError)
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for catalog file source")
	}
	return &Source{path: path, logger: logger}, nil
}

// LoadCatalog implements ports.CatalogSource.
func (s *Source) LoadCatalog(ctx context.Context) ([]*domain.CurveDefinition, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", s.path, err)
	}
	defer f.Close()

	defs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", s.path, err)
	}
	s.logger.Debug(ctx, "Curve catalog loaded", map[string]interface{}{"path": s.path, "curves": len(defs)})
	return defs, nil
}

// Decode parses a catalog document. Entries that are JSON null are skipped.
func Decode(r io.Reader) ([]*domain.CurveDefinition, error) {
	var raw []*domain.CurveDefinition
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ports.ErrCatalogDecode)
	}
	defs := make([]*domain.CurveDefinition, 0, len(raw))
	for _, def := range raw {
		if def != nil {
			defs = append(defs, def)
		}
	}
	return defs, nil
}

// Write stores defs at path as an indented catalog document.
func Write(path string, defs []*domain.CurveDefinition) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}
	data, err := json.MarshalIndent(defs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write catalog %s: %w", path, err)
	}
	return nil
}
