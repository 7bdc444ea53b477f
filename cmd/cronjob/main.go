package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"easyrent-backend/internal/config"
	"easyrent-backend/internal/jobs"
	"easyrent-backend/internal/logger"
	"easyrent-backend/internal/metrics"
	"easyrent-backend/internal/repository/postgres"
	"easyrent-backend/internal/scheduler"
	"easyrent-backend/internal/service"
	"easyrent-backend/internal/storage"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

var jobNames = []string{
	jobs.JobNormalizeCarImages,
	jobs.JobSweepOrphanUploads,
	jobs.JobSendPickupReminders,
	"all",
}

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'send-pickup-reminders', 'all')")
	flag.Parse()

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
	logger.Info("Starting EasyRent Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Repositories
	store := postgres.NewStore(db)

	deps := jobs.Dependencies{
		Cars:    store.CarRepository,
		Rentals: store.RentalRepository,
		Email:   service.NewEmailService(cfg.Email),
		Metrics: metrics.New(),
	}
	if cfg.Storage.Mode == config.StorageModeDisk {
		disk, err := storage.NewDiskStorage(cfg.Storage.UploadDir, cfg.Storage.PublicPath)
		if err != nil {
			logger.Error("Failed to initialize disk storage", "error", err)
			log.Fatalf("Failed to initialize disk storage: %v", err)
		}
		deps.Uploads = disk
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(deps, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if err := jobRunner.Run(*runOnce); err != nil {
			logger.Error("Job execution failed", "job", *runOnce, "error", err)
			if !slices.Contains(jobNames, *runOnce) {
				fmt.Printf("Available jobs:\n")
				for _, name := range jobNames {
					fmt.Printf("  - %s\n", name)
				}
			}
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}
