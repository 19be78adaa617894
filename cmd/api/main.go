package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/freerider/customer-registry/internal/config"
	"github.com/freerider/customer-registry/internal/db"
	"github.com/freerider/customer-registry/internal/handler"
	"github.com/freerider/customer-registry/internal/repository"
	"github.com/freerider/customer-registry/internal/service"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting customer registry API server")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build the customer store for the configured backend
	customerRepo, cleanup, err := newCustomerRepository(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize customer store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	logger.Info("customer store ready", slog.String("backend", cfg.Store.Backend))

	// Initialize services
	customerSvc := service.NewCustomerService(customerRepo, logger)

	// Initialize handlers
	customerHandler := handler.NewCustomerHandler(customerSvc, logger)
	healthHandler := handler.NewHealthHandler(customerRepo, logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(handler.RecoveryMiddleware(logger))
	r.Use(handler.LoggingMiddleware(logger))
	r.Use(handler.CORSMiddleware)

	// Register routes
	r.Get("/health", healthHandler.Health)

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", customerHandler.ListCustomers)
		r.Post("/", customerHandler.CreateCustomers)
		r.Put("/", customerHandler.UpdateCustomers)
		r.Get("/{id}", customerHandler.GetCustomer)
		r.Delete("/{id}", customerHandler.DeleteCustomer)
	})

	// Create server
	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("server stopped gracefully")
	}
}

// newCustomerRepository builds the store selected by STORE_BACKEND. The
// in-memory store is the default; Postgres and Redis back the same
// contract for deployments that want the collection to survive restarts.
func newCustomerRepository(cfg *config.Config, logger *slog.Logger) (repository.CustomerRepository, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		database, err := db.New(db.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return repository.NewPostgresRepository(database.DB), func() { database.Close() }, nil

	case config.BackendRedis:
		repo, err := repository.NewRedisRepository(repository.RedisConfig{
			URL: cfg.Redis.URL,
			Key: cfg.Redis.Key,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return repo, func() {
			if closer, ok := repo.(io.Closer); ok {
				closer.Close()
			}
		}, nil

	default:
		return repository.NewMemoryRepository(), func() {}, nil
	}
}
