package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow-api/internal/config"
	"github.com/yukikurage/taskflow-api/internal/constants"
	"github.com/yukikurage/taskflow-api/internal/database"
	"github.com/yukikurage/taskflow-api/internal/logger"
	"github.com/yukikurage/taskflow-api/internal/mailer"
	"github.com/yukikurage/taskflow-api/internal/middleware"
	"github.com/yukikurage/taskflow-api/internal/repository"
	"github.com/yukikurage/taskflow-api/internal/routes"
	"github.com/yukikurage/taskflow-api/internal/scheduler"
	"github.com/yukikurage/taskflow-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.SetLevel(cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.Logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)

	// Services
	validator := services.NewNameValidator(projectRepo, taskRepo)
	adminService := services.NewAdminService(userRepo)
	resetService := services.NewPasswordResetService(userRepo, resetRepo, newMailer(cfg), cfg.AppBaseURL, cfg.ResetTokenTTL)

	// Initialize AI service
	var generator services.TaskGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = services.NewAIService(cfg.OpenAIAPIKey, "")
	} else {
		logger.Logger.Warn("OPENAI_API_KEY is not set; task generation is disabled")
	}

	if admin, err := adminService.EnsureAdmin(cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Logger.Fatalf("Failed to bootstrap admin user: %v", err)
	} else if admin != nil {
		logger.Logger.Infof("Admin account ready: %s", admin.Email)
	}

	// Periodic cleanup of expired reset tokens
	jobs := scheduler.New(time.UTC)
	if cfg.TokenPurgeInterval > 0 {
		if _, err := jobs.ScheduleInterval(cfg.TokenPurgeInterval, func() {
			removed, err := resetService.PurgeExpired()
			if err != nil {
				logger.Logger.Errorf("Failed to purge expired reset tokens: %v", err)
				return
			}
			if removed > 0 {
				logger.Logger.Infof("Purged %d expired reset tokens", removed)
			}
		}); err != nil {
			logger.Logger.Fatalf("Failed to schedule token purge: %v", err)
		}
	}
	jobs.Start()

	// Initialize Gin router
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(logger.Logger), gin.Recovery())
	r.Use(sessions.Sessions(constants.SessionCookieName, newSessionStore(cfg)))

	routes.RegisterRoutes(r, routes.Dependencies{
		UserRepo:       userRepo,
		AuthService:    services.NewAuthService(userRepo),
		ResetService:   resetService,
		ProjectService: services.NewProjectService(projectRepo, validator),
		TaskService:    services.NewTaskService(taskRepo, projectRepo, validator, generator),
		ReportService:  services.NewReportService(taskRepo),
		StatsService:   services.NewStatsService(userRepo, projectRepo, taskRepo),
		AdminService:   adminService,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Logger.Infof("Server starting on :%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Logger.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Logger.Errorf("Server shutdown failed: %v", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Errorf("Server error: %v", err)
		}
	}

	jobs.Stop()
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Logger.Info("Server stopped")
}

// newSessionStore returns a Redis-backed store or, with SESSION_STORE=cookie,
// a signed cookie store.
func newSessionStore(cfg *config.Config) sessions.Store {
	var store sessions.Store
	switch cfg.SessionStore {
	case "redis":
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		s, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			logger.Logger.Fatalf("Failed to create Redis store: %v", err)
		}
		store = s
	default:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// newMailer sends through SMTP when a host is configured and MOCK_EMAIL is off;
// otherwise messages are only logged.
func newMailer(cfg *config.Config) mailer.Mailer {
	if cfg.MockEmail || cfg.SMTPHost == "" {
		logger.Logger.Info("Email delivery is mocked; messages will be logged")
		return mailer.LogMailer{}
	}

	m, err := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	if err != nil {
		logger.Logger.Fatalf("Failed to configure SMTP mailer: %v", err)
	}
	return m
}
