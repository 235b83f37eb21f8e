package services

import (
	"fmt"
	"time"

	"github.com/yukikurage/taskflow-api/internal/reporting"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

// ReportService loads task sets and runs them through the reporting engine.
type ReportService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(taskRepo repository.TaskRepository) *ReportService {
	return &ReportService{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

// UserReport builds the report over the user's tasks
func (s *ReportService) UserReport(userID uint64, q reporting.Query) (reporting.Report, error) {
	return s.build(&userID, q)
}

// GlobalReport builds the report over every user's tasks
func (s *ReportService) GlobalReport(q reporting.Query) (reporting.Report, error) {
	return s.build(nil, q)
}

func (s *ReportService) build(userID *uint64, q reporting.Query) (reporting.Report, error) {
	tasks, err := s.taskRepo.ListForReport(userID)
	if err != nil {
		return reporting.Report{}, fmt.Errorf("failed to load tasks: %w", err)
	}

	rows := make([]reporting.Row, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, reporting.RowFromTask(task))
	}

	return reporting.Build(rows, s.now(), q), nil
}
