package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"meetingroom-backend/internal/config"
	"meetingroom-backend/internal/jobs"
	"meetingroom-backend/internal/logger"
	"meetingroom-backend/internal/repository/postgres"
	"meetingroom-backend/internal/scheduler"
	"meetingroom-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'mark-in-progress', 'mark-completed', 'send-reminders', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting meeting room cronjob runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories and the notification sink
	store := postgres.NewStore(db)
	emailSvc := service.NewSendGridEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	notifier := service.NewAsyncNotifier(emailSvc, store.NotificationRepository, store.UserRepository)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store.MeetingRepository, notifier, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		notifier.Wait()
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Start the scheduler
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	sched.Stop()
	notifier.Wait()
}

func runJobOnce(runner *jobs.JobRunner, name string) {
	switch name {
	case "mark-in-progress":
		runner.MarkInProgressMeetings()
	case "mark-completed":
		runner.MarkCompletedMeetings()
	case "send-reminders":
		runner.SendMeetingReminders()
	case "all":
		runner.MarkInProgressMeetings()
		runner.MarkCompletedMeetings()
		runner.SendMeetingReminders()
	default:
		logger.Error("Unknown job", "job", name)
	}
}
