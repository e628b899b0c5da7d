package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rateCurves/internal/domain"
	"rateCurves/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements ports.CatalogRepository using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository opens (creating if needed) the catalog database.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/curves.db"
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, ports.ErrDBConnection)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %v: %w", dbPath, err, ports.ErrDBConnection)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "Curve catalog database ready", map[string]interface{}{"path": dbPath})
	return repo, nil
}

func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS curves (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		token TEXT NOT NULL DEFAULT '',
		x_nodes TEXT NOT NULL,
		y_nodes TEXT NOT NULL,
		max_rate REAL NOT NULL,
		current_utilization REAL NULL,
		protocol_fee REAL NULL,
		position INTEGER NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_curves_position ON curves (position);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// Save inserts def, or replaces the stored definition with the same name
// while keeping its catalog position.
func (r *Repository) Save(ctx context.Context, def *domain.CurveDefinition) error {
	if def == nil || def.Name == "" {
		return fmt.Errorf("curve name is required: %w", ports.ErrInvalidRequest)
	}
	xNodes, err := json.Marshal(nonNil(def.X))
	if err != nil {
		return fmt.Errorf("failed to encode x nodes for curve %s: %w", def.Name, err)
	}
	yNodes, err := json.Marshal(nonNil(def.Y))
	if err != nil {
		return fmt.Errorf("failed to encode y nodes for curve %s: %w", def.Name, err)
	}

	const query = `
	INSERT INTO curves (name, token, x_nodes, y_nodes, max_rate, current_utilization, protocol_fee, position, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM curves), ?)
	ON CONFLICT(name) DO UPDATE SET
		token = excluded.token,
		x_nodes = excluded.x_nodes,
		y_nodes = excluded.y_nodes,
		max_rate = excluded.max_rate,
		current_utilization = excluded.current_utilization,
		protocol_fee = excluded.protocol_fee,
		updated_at = excluded.updated_at`

	_, err = r.db.ExecContext(ctx, query,
		def.Name, def.Token, string(xNodes), string(yNodes), def.MaxRate,
		nullFloat(def.CurrentUtilization), nullFloat(def.ProtocolFee), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save curve %s: %v: %w", def.Name, err, ports.ErrQueryFailed)
	}
	r.logger.Debug(ctx, "Curve saved", map[string]interface{}{"curve": def.Name, "nodes": def.NodeCount()})
	return nil
}

// FindByName retrieves a definition by name. Returns nil, nil if not found.
func (r *Repository) FindByName(ctx context.Context, name string) (*domain.CurveDefinition, error) {
	const query = `
	SELECT name, token, x_nodes, y_nodes, max_rate, current_utilization, protocol_fee
	FROM curves
	WHERE name = ?`

	def, err := scanCurve(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug(ctx, "Curve not found", map[string]interface{}{"curve": name})
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query curve %s: %w", name, err)
	}
	return def, nil
}

// LoadCatalog returns every stored definition in insertion order.
func (r *Repository) LoadCatalog(ctx context.Context) ([]*domain.CurveDefinition, error) {
	const query = `
	SELECT name, token, x_nodes, y_nodes, max_rate, current_utilization, protocol_fee
	FROM curves
	ORDER BY position, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query curve catalog: %v: %w", err, ports.ErrQueryFailed)
	}
	defer rows.Close()

	defs := make([]*domain.CurveDefinition, 0)
	for rows.Next() {
		def, err := scanCurve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan curve during LoadCatalog: %w", err)
		}
		defs = append(defs, def)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating curve rows: %w", err)
	}
	return defs, nil
}

// Delete removes a definition by name.
func (r *Repository) Delete(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM curves WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete curve %s: %v: %w", name, err, ports.ErrQueryFailed)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for delete curve %s: %w", name, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("curve %s not found for delete: %w", name, ports.ErrNotFound)
	}
	r.logger.Debug(ctx, "Curve deleted", map[string]interface{}{"curve": name})
	return nil
}

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCurve(s scanner) (*domain.CurveDefinition, error) {
	def := &domain.CurveDefinition{}
	var xNodes, yNodes string
	var utilization, fee sql.NullFloat64
	if err := s.Scan(&def.Name, &def.Token, &xNodes, &yNodes, &def.MaxRate, &utilization, &fee); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(xNodes), &def.X); err != nil {
		return nil, fmt.Errorf("curve %s has corrupt x nodes: %w", def.Name, err)
	}
	if err := json.Unmarshal([]byte(yNodes), &def.Y); err != nil {
		return nil, fmt.Errorf("curve %s has corrupt y nodes: %w", def.Name, err)
	}
	if utilization.Valid {
		v := utilization.Float64
		def.CurrentUtilization = &v
	}
	if fee.Valid {
		v := fee.Float64
		def.ProtocolFee = &v
	}
	return def, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nonNil(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return v
}
