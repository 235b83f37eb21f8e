package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow-api/internal/dto"
	apierrors "github.com/yukikurage/taskflow-api/internal/errors"
	"github.com/yukikurage/taskflow-api/internal/middleware"
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/reporting"
	"github.com/yukikurage/taskflow-api/internal/services"
)

// ReportHandler serves task reports with derived metrics and analytics
type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// UserReport reports over the caller's tasks
func (h *ReportHandler) UserReport(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	query, ok := parseReportQuery(c)
	if !ok {
		return
	}

	report, err := h.reportService.UserReport(userID, query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// GlobalReport reports over every task
func (h *ReportHandler) GlobalReport(c *gin.Context) {
	query, ok := parseReportQuery(c)
	if !ok {
		return
	}

	report, err := h.reportService.GlobalReport(query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// parseReportQuery reads the report filters from the query string. Invalid
// values are answered with a 400 listing every bad parameter.
func parseReportQuery(c *gin.Context) (reporting.Query, bool) {
	var q reporting.Query
	fields := make(map[string]string)

	for _, raw := range queryList(c, "status") {
		status := models.TaskStatus(strings.ToUpper(raw))
		if !status.IsValid() {
			fields["status"] = "Invalid task status: " + raw
			continue
		}
		q.Filter.Statuses = append(q.Filter.Statuses, status)
	}

	for _, raw := range queryList(c, "priority") {
		priority := models.TaskPriority(strings.ToUpper(raw))
		if !priority.IsValid() {
			fields["priority"] = "Invalid task priority: " + raw
			continue
		}
		q.Filter.Priorities = append(q.Filter.Priorities, priority)
	}

	for _, raw := range queryList(c, "projectId") {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			fields["projectId"] = "Invalid project id: " + raw
			continue
		}
		q.Filter.ProjectIDs = append(q.Filter.ProjectIDs, id)
	}

	q.Filter.Search = strings.TrimSpace(c.Query("search"))

	if raw := c.Query("from"); raw != "" {
		from, err := dto.ParseFlexibleTime(raw)
		if err != nil {
			fields["from"] = "Must be a date in YYYY-MM-DD format"
		} else {
			q.Filter.From = &from
		}
	}
	if raw := c.Query("to"); raw != "" {
		to, err := dto.ParseFlexibleTime(raw)
		if err != nil {
			fields["to"] = "Must be a date in YYYY-MM-DD format"
		} else {
			// A bare date covers its whole day
			if _, dateErr := time.Parse(dto.DateOnlyLayout, strings.TrimSpace(raw)); dateErr == nil {
				to = reporting.EndOfDay(to)
			}
			q.Filter.To = &to
		}
	}

	if raw := c.Query("overdue"); raw != "" {
		overdue, err := strconv.ParseBool(raw)
		if err != nil {
			fields["overdue"] = "Must be true or false"
		}
		q.Filter.OverdueOnly = overdue
	}

	timing, err := reporting.ParseTiming(c.Query("timing"))
	if err != nil {
		fields["timing"] = "Must be one of: all, on_time, late"
	}
	q.Filter.Timing = timing

	field, direction, err := reporting.ParseSort(c.Query("sort"), c.Query("order"))
	if err != nil {
		fields["sort"] = err.Error()
	}
	q.SortField = field
	q.Direction = direction

	if len(fields) > 0 {
		apierrors.ValidationFailed(c, "Invalid report query", fields)
		return reporting.Query{}, false
	}
	return q, true
}

// queryList collects a repeatable, comma-separated query parameter
func queryList(c *gin.Context, key string) []string {
	var values []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
	}
	return values
}
