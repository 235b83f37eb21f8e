package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow-api/internal/handlers"
	"github.com/yukikurage/taskflow-api/internal/logger"
	"github.com/yukikurage/taskflow-api/internal/middleware"
	"github.com/yukikurage/taskflow-api/internal/repository"
	"github.com/yukikurage/taskflow-api/internal/services"
)

// Dependencies holds the services the HTTP layer is built from
type Dependencies struct {
	UserRepo       repository.UserRepository
	AuthService    *services.AuthService
	ResetService   *services.PasswordResetService
	ProjectService *services.ProjectService
	TaskService    *services.TaskService
	ReportService  *services.ReportService
	StatsService   *services.StatsService
	AdminService   *services.AdminService
}

// RegisterRoutes mounts the health check and the /api routes on r.
// Session middleware must already be installed.
func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	logger.Logger.Debug("Registering API routes")

	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.ResetService)
	profileHandler := handlers.NewProfileHandler(deps.AuthService)
	projectHandler := handlers.NewProjectHandler(deps.ProjectService)
	taskHandler := handlers.NewTaskHandler(deps.TaskService)
	reportHandler := handlers.NewReportHandler(deps.ReportService)
	statsHandler := handlers.NewStatsHandler(deps.StatsService)
	adminHandler := handlers.NewAdminHandler(deps.AdminService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "TaskFlow API is running",
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", middleware.RequireAuth(deps.UserRepo), authHandler.GetCurrentUser)
		}

		// Public counters
		api.GET("/stats", statsHandler.PublicStats)

		// Profile routes (protected)
		profile := api.Group("/profile")
		profile.Use(middleware.RequireAuth(deps.UserRepo))
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(deps.UserRepo))
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.PUT("", projectHandler.UpdateProject)
			projects.DELETE("", projectHandler.DeleteProject)
			projects.POST("/validate-name", projectHandler.ValidateName)
			projects.GET("/:id", middleware.RequireIDParam("project"), projectHandler.GetProject)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(deps.UserRepo))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/validate-name", taskHandler.ValidateName)
			tasks.POST("/generate", taskHandler.GenerateTasks)
			tasks.GET("/:id", middleware.RequireIDParam("task"), taskHandler.GetTask)
			tasks.PUT("/:id", middleware.RequireIDParam("task"), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireIDParam("task"), taskHandler.DeleteTask)
		}

		// Report over the caller's tasks
		api.GET("/report", middleware.RequireAuth(deps.UserRepo), reportHandler.UserReport)

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin(deps.UserRepo))
		{
			admin.GET("/stats", statsHandler.AdminStats)
			admin.GET("/report", reportHandler.GlobalReport)
			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.PUT("/users", adminHandler.UpdateUser)
			admin.DELETE("/users", adminHandler.DeleteUser)
		}
	}

	logger.Logger.Info("API routes registered successfully")
}
