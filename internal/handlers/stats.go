package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow-api/internal/dto"
	"github.com/yukikurage/taskflow-api/internal/services"
)

// StatsHandler serves site-wide counters and the admin overview
type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// PublicStats returns the number of users, projects and tasks
func (h *StatsHandler) PublicStats(c *gin.Context) {
	stats, err := h.statsService.Counts()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatsResponse(stats))
}

// AdminStats returns every user with their projects and tasks
func (h *StatsHandler) AdminStats(c *gin.Context) {
	users, err := h.statsService.Overview()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminStatsResponse(users))
}
