package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"rateCurves/internal/domain"
)

// DefaultPrecision is the number of decimals written for each sample.
const DefaultPrecision = 6

// WriteCurvesToCSV writes every sample of every series as one row, rounded
// to precision decimals.
func WriteCurvesToCSV(curves []domain.RenderedCurve, filename string, precision int32) error {
	file, err := create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"curve", "kind", "label", "utilization", "rate"}); err != nil {
		return err
	}
	for _, c := range curves {
		for _, p := range c.Data {
			err := writer.Write([]string{
				c.Curve,
				string(c.Kind),
				c.Label,
				FormatRate(p.X, precision),
				FormatRate(p.Y, precision),
			})
			if err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteMarkersToCSV writes one row per marker.
func WriteMarkersToCSV(markers []domain.Marker, filename string, precision int32) error {
	file, err := create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"curve", "kind", "label", "utilization", "rate"}); err != nil {
		return err
	}
	for _, m := range markers {
		err := writer.Write([]string{
			m.Curve,
			string(m.Kind),
			m.Label,
			FormatRate(m.Point.X, precision),
			FormatRate(m.Point.Y, precision),
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// FormatRate renders v with exactly precision decimals, rounding half away
// from zero.
func FormatRate(v float64, precision int32) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	return decimal.NewFromFloat(v).StringFixed(precision)
}

func create(filename string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return os.Create(filename)
}
