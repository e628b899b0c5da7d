package main

import (
	"context"
	"log" // Use standard log only for initial fatal errors before logger is set up

	"rateCurves/config"
	"rateCurves/internal/adapters/catalogfile"
	"rateCurves/internal/adapters/export"
	"rateCurves/internal/adapters/logger"
	"rateCurves/internal/adapters/sqlite"
	"rateCurves/internal/app"
	"rateCurves/internal/curve"
	"rateCurves/internal/ports"
	"rateCurves/internal/render"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.New("rate-curves", cfg.LogLevel)
	ctx := context.Background()
	appLogger.Info(ctx, "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Curve Catalog
	var catalog ports.CatalogSource
	switch cfg.CatalogSource {
	case config.SourceSQLite:
		repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
		if err != nil {
			appLogger.Error(ctx, err, "FATAL: Failed to open catalog database")
			log.Fatalf("FATAL: Failed to open catalog database: %v", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				appLogger.Error(ctx, err, "Error closing catalog database")
			}
		}()
		catalog = repo
	default:
		src, err := catalogfile.NewSource(cfg.CatalogPath, appLogger)
		if err != nil {
			appLogger.Error(ctx, err, "FATAL: Failed to initialize catalog file")
			log.Fatalf("FATAL: Failed to initialize catalog file: %v", err)
		}
		catalog = src
	}
	appLogger.Info(ctx, "Curve catalog initialized", map[string]interface{}{"source": cfg.CatalogSource})

	// 4. Initialize Engine and Renderer
	engine, err := curve.NewEngine(cfg.EngineOptions())
	if err != nil {
		log.Fatalf("FATAL: Invalid engine options: %v", err)
	}
	pres, err := config.LoadPresentation(cfg.PresentationPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to load presentation: %v", err)
	}
	renderer, err := render.NewRenderer(engine, pres, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize renderer: %v", err)
	}

	// 5. Initialize Exporter
	format, err := export.ParseFormat(cfg.ExportFormat)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	exporter, err := export.New(export.Config{
		Dir:       cfg.OutputDir,
		Format:    format,
		Precision: cfg.ExportPrecision,
		Logger:    appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize exporter: %v", err)
	}

	// 6. Initialize Application Service
	service, err := app.NewCurveService(cfg, appLogger, catalog, engine, renderer, exporter)
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize curve service")
		log.Fatalf("FATAL: Failed to initialize curve service: %v", err)
	}

	// 7. Render
	chart, path, err := service.Draw(ctx)
	if err != nil {
		log.Fatalf("FATAL: Failed to draw curves: %v", err)
	}

	appLogger.Info(ctx, "Curves exported", map[string]interface{}{
		"path": path, "series": len(chart.Series), "markers": len(chart.Markers),
	})
}
