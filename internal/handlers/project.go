package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow-api/internal/dto"
	"github.com/yukikurage/taskflow-api/internal/middleware"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/services"
)

// ProjectHandler serves the caller's projects
type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns the caller's projects with their task counts
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	projects, err := h.projectService.ListProjects(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectDTOs(projects),
	})
}

// GetProject returns a project with its tasks
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	projectID, _ := middleware.GetIDParam(c)

	project, err := h.projectService.GetProject(userID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project, true))
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type CreateProjectRequest struct {
		Name        string               `json:"name"`
		Description *string              `json:"description"`
		Color       *string              `json:"color"`
		Status      models.ProjectStatus `json:"status"`
	}

	var req CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Status:      req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project, false))
}

// UpdateProject updates the project identified by the body id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type UpdateProjectRequest struct {
		ID          uint64                `json:"id"`
		Name        string                `json:"name"`
		Description *string               `json:"description"`
		Color       *string               `json:"color"`
		Status      *models.ProjectStatus `json:"status"`
	}

	var req UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.UpdateProject(services.UpdateProjectInput{
		UserID:      userID,
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Status:      req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project, false))
}

// DeleteProject deletes the project identified by the body id and its tasks
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type DeleteProjectRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req DeleteProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.projectService.DeleteProject(userID, req.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// ValidateName reports whether the caller already owns a project with the name
func (h *ProjectHandler) ValidateName(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type ValidateNameRequest struct {
		Name      string  `json:"name"`
		ExcludeID *uint64 `json:"excludeId"`
	}

	var req ValidateNameRequest
	if !bindJSON(c, &req) {
		return
	}

	exists, err := h.projectService.NameExists(userID, req.Name, req.ExcludeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": exists})
}
