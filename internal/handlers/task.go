package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow-api/internal/dto"
	apierrors "github.com/yukikurage/taskflow-api/internal/errors"
	"github.com/yukikurage/taskflow-api/internal/middleware"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/services"
	"github.com/yukikurage/taskflow-api/internal/utils"
)

// aiRequestTimeout bounds a single task generation call
const aiRequestTimeout = 60 * time.Second

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns a page of the caller's tasks
// Can filter by projectId and status
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	input := services.ListTasksInput{
		UserID:     userID,
		Pagination: utils.GetPaginationParams(c),
	}

	if raw := c.Query("projectId"); raw != "" {
		projectID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid projectId")
			return
		}
		input.ProjectID = &projectID
	}

	if raw := c.Query("status"); raw != "" {
		status := models.TaskStatus(strings.ToUpper(strings.TrimSpace(raw)))
		input.Status = &status
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, utils.NewPaginationResponse(input.Pagination, total)))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	taskID, _ := middleware.GetIDParam(c)

	task, err := h.taskService.GetTask(userID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type CreateTaskRequest struct {
		Title       string              `json:"title"`
		ProjectID   uint64              `json:"projectId"`
		Description *string             `json:"description"`
		Status      models.TaskStatus   `json:"status"`
		Priority    models.TaskPriority `json:"priority"`
		DueDate     *dto.FlexibleTime   `json:"dueDate"`
	}

	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		UserID:      userID,
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate.Ptr(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask replaces the editable fields of a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	taskID, _ := middleware.GetIDParam(c)

	type UpdateTaskRequest struct {
		Title       string              `json:"title"`
		ProjectID   uint64              `json:"projectId"`
		Description *string             `json:"description"`
		Status      models.TaskStatus   `json:"status"`
		Priority    models.TaskPriority `json:"priority"`
		DueDate     *dto.FlexibleTime   `json:"dueDate"`
	}

	var req UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.UpdateTask(services.UpdateTaskInput{
		UserID:      userID,
		ID:          taskID,
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate.Ptr(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	taskID, _ := middleware.GetIDParam(c)

	if err := h.taskService.DeleteTask(userID, taskID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// ValidateName reports whether the title is already used in the project
func (h *TaskHandler) ValidateName(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type ValidateNameRequest struct {
		Title     string  `json:"title"`
		ProjectID uint64  `json:"projectId" binding:"required"`
		ExcludeID *uint64 `json:"excludeId"`
	}

	var req ValidateNameRequest
	if !bindJSON(c, &req) {
		return
	}

	exists, err := h.taskService.TitleExists(userID, req.ProjectID, req.Title, req.ExcludeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// GenerateTasks generates task suggestions from text using AI
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type GenerateTasksRequest struct {
		Text      string `json:"text" binding:"required"`
		ProjectID uint64 `json:"projectId" binding:"required"`
	}

	var req GenerateTasksRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), aiRequestTimeout)
	defer cancel()

	suggestions, err := h.taskService.SuggestTasks(ctx, userID, req.ProjectID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskSuggestionDTOs(suggestions),
	})
}
