package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"rateCurves/config"
	"rateCurves/internal/adapters/catalogfile"
	"rateCurves/internal/adapters/export"
	"rateCurves/internal/adapters/logger"
	"rateCurves/internal/adapters/sqlite"
	"rateCurves/internal/app"
	"rateCurves/internal/curve"
	"rateCurves/internal/ports"
	"rateCurves/internal/render"
	"rateCurves/internal/utils"
)

var (
	curveName   = flag.String("curve", "", "catalog name of the curve to quote (required)")
	utilization = flag.Float64("u", -1, "utilization in percent, negative for the curve's current utilization")
)

func main() {
	flag.Parse()
	if *curveName == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	appLogger := logger.New("query-rate", cfg.LogLevel)
	ctx := context.Background()

	var catalog ports.CatalogSource
	if cfg.CatalogSource == config.SourceSQLite {
		repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
		if err != nil {
			log.Fatalf("FATAL: Failed to open catalog database: %v", err)
		}
		defer repo.Close()
		catalog = repo
	} else {
		src, err := catalogfile.NewSource(cfg.CatalogPath, appLogger)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize catalog file: %v", err)
		}
		catalog = src
	}

	engine, err := curve.NewEngine(cfg.EngineOptions())
	if err != nil {
		log.Fatalf("FATAL: Invalid engine options: %v", err)
	}
	renderer, err := render.NewRenderer(engine, render.DefaultPresentation(), appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize renderer: %v", err)
	}
	exporter, err := export.New(export.Config{Dir: cfg.OutputDir, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize exporter: %v", err)
	}
	service, err := app.NewCurveService(cfg, appLogger, catalog, engine, renderer, exporter)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize curve service: %v", err)
	}

	quote, err := service.QuoteAt(ctx, *curveName, *utilization)
	if err != nil {
		log.Fatalf("Error quoting %s: %v", *curveName, err)
	}

	p := cfg.ExportPrecision
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
	fmt.Fprintln(w, "Curve\tUtilization\tBorrow\tLend\tFee%\tBorrow+Fee\t")
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
		quote.Curve,
		utils.FormatRate(quote.Utilization, p),
		utils.FormatRate(quote.Borrow, p),
		utils.FormatRate(quote.Lend, p),
		utils.FormatRate(quote.ProtocolFee, p),
		utils.FormatRate(quote.BorrowWithFee, p),
	)
	w.Flush()

	profile, err := service.Profile(ctx, *curveName)
	if err != nil {
		log.Fatalf("Error profiling %s: %v", *curveName, err)
	}
	fmt.Printf("\n## Shape over [%s, %s]\n", utils.FormatRate(profile.Range.Lower, 2), utils.FormatRate(profile.Range.Upper, 2))
	fmt.Printf("Borrow: min %s, max %s, mean %s, kinks %d, monotonic %t\n",
		utils.FormatRate(profile.Borrow.MinRate, p),
		utils.FormatRate(profile.Borrow.MaxRate, p),
		utils.FormatRate(profile.Borrow.MeanRate, p),
		len(profile.Borrow.Kinks),
		profile.Borrow.IsMonotonic(),
	)
	fmt.Printf("Steepest segment: %s -> %s (slope %s)\n",
		utils.FormatRate(profile.Borrow.SteepestSegment.From.X, 2),
		utils.FormatRate(profile.Borrow.SteepestSegment.To.X, 2),
		utils.FormatRate(profile.Borrow.SteepestSegment.Slope, p),
	)
	fmt.Printf("Mean borrow/lend spread: %s\n", utils.FormatRate(profile.MeanSpread, p))
}
