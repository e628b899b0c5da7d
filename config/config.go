package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"rateCurves/internal/adapters/logger"
	"rateCurves/internal/curve"
	"rateCurves/internal/domain"
)

// Catalog source kinds.
const (
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	// Catalog
	CatalogSource string // "json" or "sqlite"
	CatalogPath   string // JSON catalog document
	DBPath        string // SQLite catalog store

	// Curve slots, by catalog name. Empty picks the first catalog entries.
	CurveNames []string

	// Chart window
	Range domain.Range

	// Engine
	Resolution       int
	StrictValidation bool
	OutOfRange       curve.OutOfRangeMode
	ReserveFactorBps uint64

	// Output
	PresentationPath string // Optional YAML presentation file
	OutputDir        string
	ExportFormat     string // "csv" or "json"
	ExportPrecision  int32

	// Logging
	LogLevel logger.LogLevel
}

// EngineOptions maps the engine section onto curve.Options.
func (c *Config) EngineOptions() curve.Options {
	return curve.Options{
		Resolution:       c.Resolution,
		OutOfRange:       c.OutOfRange,
		Strict:           c.StrictValidation,
		ReserveFactorBps: c.ReserveFactorBps,
	}
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string

	// Catalog
	cfg.CatalogSource = strings.ToLower(getEnv("CATALOG_SOURCE", SourceJSON))
	if cfg.CatalogSource != SourceJSON && cfg.CatalogSource != SourceSQLite {
		errs = append(errs, fmt.Sprintf("CATALOG_SOURCE must be %q or %q", SourceJSON, SourceSQLite))
	}
	cfg.CatalogPath = getEnv("CATALOG_PATH", "./data/curves.json")
	cfg.DBPath = getEnv("DB_PATH", "./data/curves.db")
	if cfg.CatalogSource == SourceJSON && cfg.CatalogPath == "" {
		errs = append(errs, "CATALOG_PATH must be set for the json catalog source")
	}

	for _, key := range []string{"CURVE_1", "CURVE_2"} {
		if name := strings.TrimSpace(os.Getenv(key)); name != "" {
			cfg.CurveNames = append(cfg.CurveNames, name)
		}
	}

	// Chart window
	cfg.Range.Lower, err = getEnvAsFloatRequired("RANGE_LOWER", domain.DefaultRange.Lower)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid RANGE_LOWER: %v", err))
	}
	cfg.Range.Upper, err = getEnvAsFloatRequired("RANGE_UPPER", domain.DefaultRange.Upper)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid RANGE_UPPER: %v", err))
	}
	if err := curve.ValidateRange(cfg.Range, true); err != nil {
		errs = append(errs, fmt.Sprintf("RANGE_LOWER/RANGE_UPPER: %v", err))
	}

	// Engine
	cfg.Resolution, err = getEnvAsIntRequired("RESOLUTION", curve.DefaultResolution)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid RESOLUTION: %v", err))
	} else if cfg.Resolution <= 0 {
		errs = append(errs, "RESOLUTION must be positive")
	}
	cfg.StrictValidation = getEnvAsBool("STRICT_VALIDATION", false)

	cfg.OutOfRange = curve.OutOfRangeMode(strings.ToLower(getEnv("OUT_OF_RANGE", string(curve.OutOfRangeZero))))
	if cfg.OutOfRange != curve.OutOfRangeZero && cfg.OutOfRange != curve.OutOfRangeExtrapolate {
		errs = append(errs, fmt.Sprintf("OUT_OF_RANGE must be %q or %q", curve.OutOfRangeZero, curve.OutOfRangeExtrapolate))
	}

	reserve, err := getEnvAsIntRequired("RESERVE_FACTOR_BPS", 0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid RESERVE_FACTOR_BPS: %v", err))
	} else if reserve < 0 || reserve > 10_000 {
		errs = append(errs, "RESERVE_FACTOR_BPS must be between 0 and 10000")
	} else {
		cfg.ReserveFactorBps = uint64(reserve)
	}

	// Output
	cfg.PresentationPath = getEnv("PRESENTATION_PATH", "")
	cfg.OutputDir = getEnv("OUTPUT_DIR", "./data/out")
	cfg.ExportFormat = strings.ToLower(getEnv("EXPORT_FORMAT", "csv"))
	if cfg.ExportFormat != "csv" && cfg.ExportFormat != "json" {
		errs = append(errs, "EXPORT_FORMAT must be csv or json")
	}
	precision := getEnvAsInt("EXPORT_PRECISION", 6)
	if precision < 0 || precision > 15 {
		errs = append(errs, "EXPORT_PRECISION must be between 0 and 15")
	}
	cfg.ExportPrecision = int32(precision)

	// Logging
	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(strings.TrimSpace(valueStr))
	if err != nil {
		return defaultValue
	}
	return value
}
