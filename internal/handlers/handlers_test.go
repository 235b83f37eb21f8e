package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskflow-api/internal/constants"
	"github.com/yukikurage/taskflow-api/internal/database"
	"github.com/yukikurage/taskflow-api/internal/mailer"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
	"github.com/yukikurage/taskflow-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db *gorm.DB

	userRepo repository.UserRepository

	authService    *services.AuthService
	resetService   *services.PasswordResetService
	projectService *services.ProjectService
	taskService    *services.TaskService
	reportService  *services.ReportService
	statsService   *services.StatsService
	adminService   *services.AdminService

	generator *stubGenerator
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(sqlite.Open(":memory:"), gormlogger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)

	generator := &stubGenerator{}
	validator := services.NewNameValidator(projectRepo, taskRepo)

	return testEnv{
		db:             db,
		userRepo:       userRepo,
		authService:    services.NewAuthService(userRepo),
		resetService:   services.NewPasswordResetService(userRepo, resetRepo, mailer.LogMailer{}, "http://app.test", time.Hour),
		projectService: services.NewProjectService(projectRepo, validator),
		taskService:    services.NewTaskService(taskRepo, projectRepo, validator, generator),
		reportService:  services.NewReportService(taskRepo),
		statsService:   services.NewStatsService(userRepo, projectRepo, taskRepo),
		adminService:   services.NewAdminService(userRepo),
		generator:      generator,
	}
}

// newRouter returns an engine with cookie sessions installed
func newRouter() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	return r
}

// asUser stands in for RequireAuth in handler tests
func asUser(userID uint64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

func (env testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := env.authService.Signup(services.SignupInput{
		Name:     "Test User",
		Email:    email,
		Password: "supersecret",
	})
	require.NoError(t, err)
	return user
}

func (env testEnv) createProject(t *testing.T, userID uint64, name string) *models.Project {
	t.Helper()
	project, err := env.projectService.CreateProject(services.CreateProjectInput{UserID: userID, Name: name})
	require.NoError(t, err)
	return project
}

func (env testEnv) createTask(t *testing.T, userID, projectID uint64, title string) *models.Task {
	t.Helper()
	task, err := env.taskService.CreateTask(services.CreateTaskInput{UserID: userID, ProjectID: projectID, Title: title})
	require.NoError(t, err)
	return task
}

func performJSON(r http.Handler, method, path string, payload interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			panic(err)
		}
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

type errorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Errors map[string]string `json:"errors"`
}

type stubGenerator struct {
	tasks []services.GeneratedTask
	err   error
}

func (g *stubGenerator) GenerateTasksFromText(_ context.Context, _ string) ([]services.GeneratedTask, error) {
	return g.tasks, g.err
}
