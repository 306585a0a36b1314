package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gitlab.com/pmlabs1/inc.reader_server/src/production/INC.ApiService/controllers"
	consolidator "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Consolidator"
	container "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Container"
	implementation "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Repository/Implementation"
)

func main() {
	// Initialize dependency injection container
	ctr, err := container.NewContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize container: %v", err))
	}
	defer ctr.Shutdown(context.Background())

	logger := ctr.GetLogger()
	logger.Info("Starting incubator reader API service")

	// Initialize database
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ctr.InitializeDatabase(ctx); err != nil {
		logger.FatalWithError(err, "Failed to initialize database")
	}

	db, err := ctr.GetDatabase()
	if err != nil {
		logger.FatalWithError(err, "Failed to get database connection")
	}

	healthChecker, err := ctr.GetHealthChecker()
	if err != nil {
		logger.FatalWithError(err, "Failed to get health checker")
	}

	config := ctr.GetConfig()

	// Create repository, consolidation engine and query cache
	readingRepo := implementation.NewPostgresReadingRepository(db)
	consolidationService := consolidator.NewService(db, readingRepo, logger)
	queryCache := controllers.NewQueryCache(ctr.GetRedis(), config.Redis.CacheTTL)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Configure CORS from config
	corsConfig := cors.Config{
		AllowOrigins:     config.CORS.AllowedOrigins,
		AllowMethods:     config.CORS.AllowedMethods,
		AllowHeaders:     config.CORS.AllowedHeaders,
		ExposeHeaders:    config.CORS.ExposedHeaders,
		AllowCredentials: config.CORS.AllowCredentials,
		MaxAge:           time.Duration(config.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	// Create controllers and register routes
	consolidationController := controllers.NewConsolidationController(consolidationService, queryCache, logger)
	deviceController := controllers.NewDeviceController(readingRepo, queryCache, logger)
	healthController := controllers.NewHealthController(healthChecker, logger)

	consolidationController.RegisterRoutes(router)
	deviceController.RegisterRoutes(router)
	healthController.RegisterRoutes(router)

	// Get port from configuration
	port := config.Server.Port

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
		IdleTimeout:  config.Server.IdleTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("HTTP server starting on port " + port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalWithError(err, "Failed to start HTTP server")
		}
	}()

	logger.Info("API service running... press Ctrl+C to stop")

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithError(err, "Server forced to shutdown")
	}
}
