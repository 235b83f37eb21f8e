package services

import (
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/reporting"
)

func (suite *ServiceTestSuite) createReportTask(userID, projectID uint64, title string, status models.TaskStatus, created time.Time, completed, due *time.Time) {
	task := &models.Task{
		Title:       title,
		Status:      status,
		Priority:    models.TaskPriorityMedium,
		UserID:      userID,
		ProjectID:   projectID,
		CreatedAt:   created,
		CompletedAt: completed,
		DueDate:     due,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
}

func (suite *ServiceTestSuite) TestUserReport() {
	user := suite.createTestUser("a@example.com")
	other := suite.createTestUser("b@example.com")
	project := suite.createTestProject(user.ID, "Launch")
	othersProject := suite.createTestProject(other.ID, "Elsewhere")

	created := testNow.Add(-5 * 24 * time.Hour)
	completed := created.Add(3 * 24 * time.Hour)
	dueLater := created.Add(4 * 24 * time.Hour)
	yesterday := testNow.Add(-24 * time.Hour)

	suite.createReportTask(user.ID, project.ID, "shipped", models.TaskStatusCompleted, created, &completed, &dueLater)
	suite.createReportTask(user.ID, project.ID, "late start", models.TaskStatusTodo, created, nil, &yesterday)
	suite.createReportTask(other.ID, othersProject.ID, "not mine", models.TaskStatusTodo, created, nil, nil)

	report, err := suite.reports.UserReport(user.ID, reporting.Query{
		Filter:    reporting.Filter{OverdueOnly: true},
		SortField: reporting.SortByTitle,
		Direction: reporting.Asc,
	})

	suite.Require().NoError(err)
	suite.Equal(2, report.Analytics.Total)
	suite.Equal(50, report.Analytics.CompletionRate)
	suite.Equal(100, report.Analytics.OnTimeRate)
	suite.Equal(3, report.Analytics.AvgCompletionDays)
	suite.Equal(1, report.Analytics.Overdue)

	suite.Require().Len(report.Entries, 1)
	entry := report.Entries[0]
	suite.Equal("late start", entry.Title)
	suite.Equal("Launch", entry.ProjectName)
	suite.True(entry.IsOverdue)
	suite.Require().NotNil(entry.DaysUntilDue)
	suite.Equal(-1, *entry.DaysUntilDue)
	suite.Nil(entry.CompletedOnTime)
	suite.Equal(1, report.FilteredAnalytics.Total)
}

func (suite *ServiceTestSuite) TestGlobalReport() {
	alice := suite.createTestUser("a@example.com")
	bob := suite.createTestUser("b@example.com")
	suite.createTestTask(alice.ID, suite.createTestProject(alice.ID, "A").ID, "one")
	suite.createTestTask(bob.ID, suite.createTestProject(bob.ID, "B").ID, "two")

	report, err := suite.reports.GlobalReport(reporting.Query{SortField: reporting.SortByProject, Direction: reporting.Desc})

	suite.Require().NoError(err)
	suite.Equal(2, report.Analytics.Total)
	suite.Require().Len(report.Entries, 2)
	suite.Equal("B", report.Entries[0].ProjectName)
}
