package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "easyrent-backend/internal/api/http"
	"easyrent-backend/internal/config"
	"easyrent-backend/internal/logger"
	"easyrent-backend/internal/metrics"
	"easyrent-backend/internal/repository/postgres"
	"easyrent-backend/internal/security"
	"easyrent-backend/internal/service"
	"easyrent-backend/internal/storage"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// .env is optional, real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EasyRent API...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Storage configuration", "mode", cfg.Storage.Mode, "upload_dir", cfg.Storage.UploadDir, "max_file_size_mb", cfg.Storage.MaxFileSize)
	logger.Info("Email configuration", "enabled", cfg.Email.Enabled(), "from", cfg.Email.FromEmail)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if cfg.Database.Migrate {
		if err := postgres.RunMigrations(context.Background(), db); err != nil {
			logger.Error("Failed to run migrations", "error", err)
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TokenExpiryHours)*time.Hour)

	m := metrics.New()

	// Initialize Storage
	var imageStore storage.ImageStorage
	uploadsPath := ""
	switch cfg.Storage.Mode {
	case config.StorageModeDisk:
		logger.Info("Using disk storage for car images", "upload_dir", cfg.Storage.UploadDir)
		disk, err := storage.NewDiskStorage(cfg.Storage.UploadDir, cfg.Storage.PublicPath)
		if err != nil {
			logger.Error("Failed to initialize disk storage", "error", err)
			log.Fatalf("Failed to initialize disk storage: %v", err)
		}
		imageStore = disk
		uploadsPath = cfg.Storage.PublicPath
	case config.StorageModeBase64:
		logger.Info("Car images are stored inline as data URIs")
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email)
	services := httpapi.Services{
		Auth:   service.NewAuthService(store.UserRepository, tokenManager),
		User:   service.NewUserService(store.UserRepository),
		Brand:  service.NewBrandService(store.BrandRepository, store.ModelRepository),
		Model:  service.NewModelService(store.ModelRepository, store.BrandRepository, store.CarRepository),
		Car:    service.NewCarService(store.CarRepository, store.ModelRepository, store.RentalRepository),
		Rental: service.NewRentalService(store.RentalRepository, store.CarRepository, store.UserRepository, emailSvc, m),
		Image:  service.NewImageService(imageStore, cfg.Storage),
	}

	router := httpapi.NewRouter(services, httpapi.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxUploadBytes: cfg.Storage.MaxFileSizeBytes(),
		UploadsPath:    uploadsPath,
		Metrics:        m,
	})

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
