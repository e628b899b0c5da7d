package ports

import (
	"context"

	"rateCurves/internal/domain"
)

// CatalogSource supplies the curve definitions a render pass can choose from.
type CatalogSource interface {
	// LoadCatalog returns every known definition in catalog order.
	LoadCatalog(ctx context.Context) ([]*domain.CurveDefinition, error)
}

// CatalogRepository is a writable catalog store.
type CatalogRepository interface {
	CatalogSource
	// Save inserts the definition or replaces the one with the same name.
	Save(ctx context.Context, def *domain.CurveDefinition) error
	// FindByName retrieves a single definition.
	// Returns nil, nil if no definition carries that name.
	FindByName(ctx context.Context, name string) (*domain.CurveDefinition, error)
	// Delete removes a definition by name. Deleting a missing name yields ErrNotFound.
	Delete(ctx context.Context, name string) error
}

// CurveExporter writes rendered series somewhere a charting tool can pick them up.
type CurveExporter interface {
	// Export persists the series and markers and returns the written location.
	Export(ctx context.Context, name string, curves []domain.RenderedCurve, markers []domain.Marker) (string, error)
}
