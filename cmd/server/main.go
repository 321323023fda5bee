package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homevest/api/internal/advisor"
	"github.com/homevest/api/internal/config"
	"github.com/homevest/api/internal/database"
	"github.com/homevest/api/internal/handlers"
	"github.com/homevest/api/internal/logger"
	"github.com/homevest/api/internal/middleware"
	"github.com/homevest/api/internal/repository"
	"github.com/homevest/api/internal/services"
	"github.com/redis/go-redis/v9"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting Homevest analysis API", map[string]interface{}{
		"version":     "0.1.0",
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Create database connection pool
	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure database schema", err, nil)
	}

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	// Result cache: Redis when configured, in-process otherwise
	var cache repository.AnalysisCache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", err, map[string]interface{}{
				"addr": cfg.Redis.Addr,
			})
		}
		defer redisClient.Close()
		cache = repository.NewRedisCache(redisClient, cfg.Redis.TTL)
		log.Info("Redis cache enabled", map[string]interface{}{
			"addr": cfg.Redis.Addr,
			"ttl":  cfg.Redis.TTL.String(),
		})
	} else {
		cache = repository.NewMemoryCache(cfg.Redis.TTL)
		log.Info("Using in-process analysis cache", map[string]interface{}{
			"ttl": cfg.Redis.TTL.String(),
		})
	}

	// Narrative generation is optional; without an API key the analyses
	// carry the locally computed narrative only
	var enricher services.NarrativeEnricher
	narrativeEnabled := cfg.Advisor.APIKey != ""
	if narrativeEnabled {
		client := advisor.NewChatClient(
			cfg.Advisor.APIURL,
			cfg.Advisor.APIKey,
			cfg.Advisor.Model,
			cfg.Advisor.MaxTokens,
			cfg.Advisor.Timeout,
		)
		enricher = advisor.New(client, log.WithComponent("advisor"))
		log.Info("Narrative generation enabled", map[string]interface{}{
			"model": cfg.Advisor.Model,
		})
	} else {
		log.Info("Narrative generation disabled, using local narrative", nil)
	}

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env, narrativeEnabled)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	// Initialize repository and service layers
	store := repository.NewAnalysisStore(db)
	analysisService := services.NewAnalysisService(store, cache, enricher, log.WithComponent("analysis"))

	// Initialize handlers
	analysisHandler := handlers.NewAnalysisHandler(analysisService)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		analyses := v1.Group("/analyses")
		{
			analyses.POST("", analysisHandler.Create)
			analyses.GET("", analysisHandler.List)
			analyses.GET("/:id", analysisHandler.Get)
			analyses.DELETE("/:id", analysisHandler.Delete)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
