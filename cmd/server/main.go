package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transport_manager/internal/auth"
	"transport_manager/internal/config"
	"transport_manager/internal/database"
	"transport_manager/internal/handlers"
	"transport_manager/internal/migrations"
	"transport_manager/internal/redis"
	"transport_manager/internal/repository"
	"transport_manager/internal/repository/memstore"
	"transport_manager/internal/scheduler"
	"transport_manager/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	// Initialize storage
	var store *repository.Store
	switch cfg.StoreDriver {
	case "memory":
		log.Println("Using in-memory store, data is lost on restart")
		store = memstore.New()
	default:
		db, err := database.Initialize(cfg.DatabaseURL, database.Options{
			LogLevel:        cfg.DBLogLevel,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
		})
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		if err := migrations.RunMigrations(db, cfg.AdminPassword); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		store = repository.NewGormStore(db)
	}

	// Initialize Redis summary cache when configured
	var cache services.SummaryCache
	if cfg.RedisURL != "" {
		redisClient, err := redis.Initialize(cfg.RedisURL)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		defer redisClient.Close()
		cache = redis.NewLedgerCache(redisClient, cfg.CacheTTL)
	}

	svc := services.New(store, cache, time.Now)
	if cfg.StoreDriver == "memory" {
		if err := svc.Users.EnsureAdmin(context.Background(), cfg.AdminPassword); err != nil {
			log.Fatal("Failed to create admin account:", err)
		}
	}

	// Periodic jobs
	jobs := scheduler.New(svc.Stock)
	if err := jobs.AddStockSnapshot(cfg.SnapshotCron); err != nil {
		log.Fatal(err)
	}
	jobs.Start()

	// Setup routes
	gin.SetMode(cfg.GinMode)
	router := gin.Default()
	handlers.NewAPIHandler(svc, auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)).Register(router)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	jobs.Stop(ctx)
	log.Println("Server exited")
}
