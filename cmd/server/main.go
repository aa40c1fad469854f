package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/yeonsu-kang/dutchpay/internal/config"
	"github.com/yeonsu-kang/dutchpay/internal/handler"
	"github.com/yeonsu-kang/dutchpay/internal/repository"
	"github.com/yeonsu-kang/dutchpay/internal/service"
	"github.com/yeonsu-kang/dutchpay/pkg/logging"
	"github.com/yeonsu-kang/dutchpay/pkg/response"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level)

	// Initialize payload store
	repo, err := initRepository(cfg)
	if err != nil {
		slog.Error("failed to initialize payload store", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	// Initialize Redis cache (optional)
	redisClient := initRedis(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Initialize service and handlers
	shareService := service.NewShareService(repo, redisClient, cfg)
	payloadHandler := handler.NewPayloadHandler(shareService)
	shareHandler := handler.NewShareHandler(shareService)
	healthHandler := handler.NewHealthHandler(repo, redisClient, cfg.GetHealthTimeout())

	// Setup routes
	router := setupRoutes(payloadHandler, shareHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("server starting", "addr", server.Addr, "storage", cfg.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited")
}

func initRepository(cfg *config.Config) (repository.PayloadRepository, error) {
	switch cfg.Storage.Driver {
	case "bolt":
		return repository.NewBoltRepository(cfg.Storage.BoltPath)
	default:
		return repository.NewFileRepository(cfg.Storage.Dir)
	}
}

func initRedis(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(payloadHandler *handler.PayloadHandler, shareHandler *handler.ShareHandler, healthHandler *handler.HealthHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.RequestIDMiddleware)
	router.Use(response.LoggingMiddleware)
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// Metrics
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	/// API routes
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/payload", payloadHandler.Store).Methods("POST")
	api.HandleFunc("/payload", payloadHandler.Fetch).Methods("GET")
	api.HandleFunc("/share", shareHandler.CreateLink).Methods("POST")
	api.HandleFunc("/share", shareHandler.Resolve).Methods("GET")
	api.HandleFunc("/autosave", shareHandler.SaveAutosave).Methods("POST")
	api.HandleFunc("/autosave", shareHandler.ClearAutosave).Methods("DELETE")

	return router
}
