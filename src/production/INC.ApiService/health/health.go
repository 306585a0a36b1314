package health

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	config "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Config"
)

// HealthChecker provides health check functionality
type HealthChecker struct {
	db *sql.DB
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(db *sql.DB) *HealthChecker {
	return &HealthChecker{db: db}
}

// PingPostgres checks if the PostgreSQL connection is healthy
func (h *HealthChecker) PingPostgres(ctx context.Context) error {
	if h.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return h.db.PingContext(ctx)
}

// CheckDatabaseHealth performs a comprehensive database health check
func (h *HealthChecker) CheckDatabaseHealth(ctx context.Context) error {
	if err := h.PingPostgres(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Check if we can execute a simple query
	var result int
	err := h.db.QueryRowContext(ctx, "SELECT 1").Scan(&result)
	if err != nil {
		return fmt.Errorf("database query failed: %w", err)
	}

	return nil
}

// GetHealthStatus returns the current health status
func (h *HealthChecker) GetHealthStatus(ctx context.Context) map[string]interface{} {
	status := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    make(map[string]interface{}),
	}

	dbStatus := "ok"
	if err := h.CheckDatabaseHealth(ctx); err != nil {
		dbStatus = "error"
		status["checks"].(map[string]interface{})["postgres"] = map[string]interface{}{
			"status": dbStatus,
			"error":  err.Error(),
		}
	} else {
		status["checks"].(map[string]interface{})["postgres"] = map[string]interface{}{
			"status": dbStatus,
		}
	}

	overallStatus := "ok"
	if dbStatus != "ok" {
		overallStatus = "degraded"
	}
	status["status"] = overallStatus

	return status
}

// DatabaseManager handles database schema operations
type DatabaseManager struct {
	db *sql.DB
}

// NewDatabaseManager creates a new database manager
func NewDatabaseManager(db *sql.DB) *DatabaseManager {
	return &DatabaseManager{db: db}
}

// ConnectPostgresWithTimeout creates a PostgreSQL connection with a timeout context
func ConnectPostgresWithTimeout(cfg *config.Config, timeout time.Duration) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := sql.Open("postgres", cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("unable to open PostgreSQL connection: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping PostgreSQL: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxConns)
	db.SetMaxIdleConns(cfg.Database.MinConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// CreateTables creates the required tables if they don't exist
func (dm *DatabaseManager) CreateTables(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// log_date and log_time are TEXT on purpose: readings carry the device's
	// wall-clock values and must never pass through a timezone conversion.
	// Lexicographic order on YYYY-MM-DD strings equals chronological order.
	createReadingsTable := `
		CREATE TABLE IF NOT EXISTS readings (
			record_id       TEXT PRIMARY KEY,
			device_id       TEXT NOT NULL,
			log_date        TEXT NOT NULL,
			log_time        TEXT NOT NULL,
			temp_min_1      DOUBLE PRECISION,
			temp_max_1      DOUBLE PRECISION,
			temp_min_2      DOUBLE PRECISION,
			temp_max_2      DOUBLE PRECISION,
			door_seconds    INTEGER NOT NULL DEFAULT 0,
			motor_time      DOUBLE PRECISION NOT NULL DEFAULT 0,
			network_seconds INTEGER NOT NULL DEFAULT 0,
			alarm_seconds   INTEGER NOT NULL DEFAULT 0,
			notes           TEXT NOT NULL DEFAULT '',
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	createIndexes := `
		CREATE INDEX IF NOT EXISTS idx_readings_device_date ON readings (device_id, log_date);
	`

	queries := []string{
		createReadingsTable,
		createIndexes,
	}

	for _, query := range queries {
		if _, err := dm.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (dm *DatabaseManager) Close() error {
	if dm.db != nil {
		return dm.db.Close()
	}
	return nil
}
