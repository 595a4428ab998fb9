package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "meetingroom-backend/internal/api/http"
	"meetingroom-backend/internal/config"
	"meetingroom-backend/internal/logger"
	"meetingroom-backend/internal/repository/postgres"
	"meetingroom-backend/internal/scheduling"
	"meetingroom-backend/internal/security"
	"meetingroom-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting meeting room backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Approval configuration", "participant_threshold", cfg.Approval.ParticipantThreshold)

	// Initialize Database
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

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)

	// Initialize Services
	emailSvc := service.NewSendGridEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	notifier := service.NewAsyncNotifier(emailSvc, store.NotificationRepository, store.UserRepository)
	policy := scheduling.NewApprovalPolicy(cfg.Approval.ParticipantThreshold)

	meetingSvc := service.NewMeetingService(
		store.MeetingRepository,
		store.RoomRepository,
		store.ApprovalRepository,
		policy,
		notifier,
	)
	roomSvc := service.NewRoomService(store.RoomRepository)
	userSvc := service.NewUserService(store.UserRepository)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	notificationSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP handlers
	userHandler := httpapi.NewUserHandler(userSvc, authSvc)
	roomHandler := httpapi.NewRoomHandler(roomSvc)
	meetingHandler := httpapi.NewMeetingHandler(meetingSvc)
	notificationHandler := httpapi.NewNotificationHandler(notificationSvc)

	router := httpapi.NewRouter(authMiddleware, userHandler, roomHandler, meetingHandler, notificationHandler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
