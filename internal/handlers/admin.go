package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow-api/internal/dto"
	"github.com/yukikurage/taskflow-api/internal/middleware"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/services"
	"github.com/yukikurage/taskflow-api/internal/utils"
)

// AdminHandler serves user management for administrators
type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// ListUsers returns a page of users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.adminService.ListUsers(params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserListResponse(users, utils.NewPaginationResponse(params, total)))
}

// CreateUser creates an account with the given role
func (h *AdminHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Name     string          `json:"name" binding:"required"`
		Email    string          `json:"email" binding:"required,email"`
		Password string          `json:"password" binding:"required"`
		Role     models.UserRole `json:"role" binding:"omitempty,oneof=USER ADMIN"`
	}

	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.adminService.CreateUser(services.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// UpdateUser changes a user's name, role or blocked state
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)

	type UpdateUserRequest struct {
		ID        uint64           `json:"id" binding:"required"`
		Name      *string          `json:"name"`
		Role      *models.UserRole `json:"role" binding:"omitempty,oneof=USER ADMIN"`
		IsBlocked *bool            `json:"isBlocked"`
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.adminService.UpdateUser(actorID, services.UpdateUserInput{
		ID:        req.ID,
		Name:      req.Name,
		Role:      req.Role,
		IsBlocked: req.IsBlocked,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser deletes a user with their projects, tasks and reset tokens
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)

	type DeleteUserRequest struct {
		ID uint64 `json:"id" binding:"required"`
	}

	var req DeleteUserRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.adminService.DeleteUser(actorID, req.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}
