package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"rateCurves/config"
	"rateCurves/internal/adapters/catalogfile"
	"rateCurves/internal/adapters/logger"
	"rateCurves/internal/adapters/sqlite"
	"rateCurves/internal/app"
)

var (
	catalogPath = flag.String("catalog", "", "JSON catalog to import (defaults to CATALOG_PATH)")
	dbPath      = flag.String("db", "", "SQLite catalog store (defaults to DB_PATH)")
	strict      = flag.Bool("strict", false, "reject the whole import if any curve is malformed")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	if *catalogPath == "" {
		*catalogPath = cfg.CatalogPath
	}
	if *dbPath == "" {
		*dbPath = cfg.DBPath
	}

	appLogger := logger.New("import-catalog", cfg.LogLevel)
	ctx := context.Background()

	src, err := catalogfile.NewSource(*catalogPath, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize catalog file: %v", err)
	}

	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: *dbPath, Logger: appLogger})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to open catalog database")
		log.Fatalf("FATAL: Failed to open catalog database: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(ctx, err, "Error closing catalog database")
		}
	}()

	n, err := app.ImportCatalog(ctx, appLogger, src, repo, *strict || cfg.StrictValidation)
	if err != nil {
		appLogger.Error(ctx, err, "Catalog import failed", map[string]interface{}{"imported": n})
		log.Fatalf("Catalog import failed after %d curves: %v", n, err)
	}
	fmt.Printf("Imported %d curves from %s into %s\n", n, *catalogPath, *dbPath)
}
