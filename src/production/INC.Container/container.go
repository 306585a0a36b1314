package container

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gitlab.com/pmlabs1/inc.reader_server/src/production/INC.ApiService/health"
	config "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Config"
	logger "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Logger"
)

// Container manages dependencies and their lifecycle
type Container struct {
	config *config.Config
	logger *logger.Logger
	db     *sql.DB
	rdb    *redis.Client

	// Health components
	healthChecker   *health.HealthChecker
	databaseManager *health.DatabaseManager

	// Mutex for thread-safe access
	mu sync.RWMutex

	// Cleanup functions
	cleanupFuncs []func() error
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	log := logger.NewLogger(&cfg.Logging)

	container := &Container{
		config: cfg,
		logger: log,
	}

	container.registerCleanup()

	return container, nil
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.logger
}

// GetDatabase returns the database connection
func (c *Container) GetDatabase() (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		db, err := health.ConnectPostgresWithTimeout(c.config, 20*time.Second)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.db = db
	}

	return c.db, nil
}

// GetRedis returns the redis client, or nil when the cache is not configured.
// A connection failure disables the cache instead of failing startup.
func (c *Container) GetRedis() *redis.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	addr := c.config.GetRedisAddr()
	if addr == "" {
		return nil
	}

	if c.rdb == nil {
		rdb := redis.NewClient(&redis.Options{Addr: addr})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := rdb.Ping(ctx).Err(); err != nil {
			c.logger.ErrorWithError(err, "Redis unreachable, query cache disabled")
			rdb.Close()
			return nil
		}
		c.rdb = rdb
	}

	return c.rdb
}

// GetHealthChecker returns the health checker
func (c *Container) GetHealthChecker() (*health.HealthChecker, error) {
	c.mu.Lock()
	if c.healthChecker != nil {
		c.mu.Unlock()
		return c.healthChecker, nil
	}
	c.mu.Unlock()

	// Get database without holding the lock to avoid deadlock
	db, err := c.GetDatabase()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for health checker: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.healthChecker == nil {
		c.healthChecker = health.NewHealthChecker(db)
	}

	return c.healthChecker, nil
}

// GetDatabaseManager returns the database manager
func (c *Container) GetDatabaseManager() (*health.DatabaseManager, error) {
	c.mu.Lock()
	if c.databaseManager != nil {
		c.mu.Unlock()
		return c.databaseManager, nil
	}
	c.mu.Unlock()

	db, err := c.GetDatabase()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for database manager: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.databaseManager == nil {
		c.databaseManager = health.NewDatabaseManager(db)
	}

	return c.databaseManager, nil
}

// InitializeDatabase initializes the database and creates tables
func (c *Container) InitializeDatabase(ctx context.Context) error {
	dbManager, err := c.GetDatabaseManager()
	if err != nil {
		return fmt.Errorf("failed to get database manager: %w", err)
	}

	if err := dbManager.CreateTables(ctx); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	c.logger.Info("Database initialized successfully")
	return nil
}

// HealthCheck performs a comprehensive health check
func (c *Container) HealthCheck(ctx context.Context) map[string]interface{} {
	healthChecker, err := c.GetHealthChecker()
	if err != nil {
		return map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	}

	return healthChecker.GetHealthStatus(ctx)
}

// Shutdown gracefully shuts down the container and all its dependencies
func (c *Container) Shutdown(ctx context.Context) error {
	c.logger.Info("Shutting down container...")

	// Execute cleanup functions in reverse order
	for i := len(c.cleanupFuncs) - 1; i >= 0; i-- {
		if err := c.cleanupFuncs[i](); err != nil {
			c.logger.ErrorWithError(err, "Error during cleanup")
		}
	}

	c.logger.Info("Container shutdown complete")
	return nil
}

// registerCleanup registers cleanup functions
func (c *Container) registerCleanup() {
	c.cleanupFuncs = append(c.cleanupFuncs, func() error {
		if c.rdb != nil {
			return c.rdb.Close()
		}
		return nil
	})
	c.cleanupFuncs = append(c.cleanupFuncs, func() error {
		if c.db != nil {
			return c.db.Close()
		}
		return nil
	})
}
