package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"agrohire-backend/internal/config"
	"agrohire-backend/internal/jobs"
	"agrohire-backend/internal/logger"
	"agrohire-backend/internal/repository/postgres"
	"agrohire-backend/internal/scheduler"
	"agrohire-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'update-dynamic-pricing', 'all-nightly')")
	flag.Parse()

	// Load .env for local development; absence is fine
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting AgroHire Cronjob Runner...", "log_level", cfg.Log.Level)

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

	// Initialize Services
	emailService := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	pricingService := service.NewPricingService(
		store.Equipment,
		store.Bookings,
		store.PricingRules,
		store.SeasonalPricing,
		store.DemandPricing,
		store.PricingHistory,
		cfg.Pricing.HistoryRetentionDays,
	)

	bookingService := service.NewBookingService(
		store.Bookings,
		store.Equipment,
		store.Users,
		store.Notifications,
		pricingService,
		emailService,
	)

	jobServices := &jobs.Services{
		Pricing: pricingService,
		Booking: bookingService,
		Email:   emailService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

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

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "update-dynamic-pricing":
		jobRunner.UpdateDynamicPricing()
	case "cleanup-pricing-history":
		jobRunner.CleanupPricingHistory()
	case "pricing-report":
		jobRunner.GeneratePricingReport()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - update-dynamic-pricing\n")
		fmt.Printf("  - cleanup-pricing-history\n")
		fmt.Printf("  - pricing-report\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
