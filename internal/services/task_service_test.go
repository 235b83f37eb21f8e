package services

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
	"github.com/yukikurage/taskflow-api/internal/utils"
)

func (suite *ServiceTestSuite) TestCreateTask_Defaults() {
	user := suite.createTestUser("a@example.com")
	project := suite.createTestProject(user.ID, "Launch")

	task, err := suite.tasks.CreateTask(CreateTaskInput{
		UserID:    user.ID,
		ProjectID: project.ID,
		Title:     "  Write docs ",
	})

	suite.Require().NoError(err)
	suite.Equal("Write docs", task.Title)
	suite.Equal(models.TaskStatusTodo, task.Status)
	suite.Equal(models.TaskPriorityMedium, task.Priority)
	suite.Nil(task.CompletedAt)
	suite.Equal("Launch", task.Project.Name)
}

func (suite *ServiceTestSuite) TestCreateTask_CompletedIsStamped() {
	user := suite.createTestUser("a@example.com")
	project := suite.createTestProject(user.ID, "Launch")

	task, err := suite.tasks.CreateTask(CreateTaskInput{
		UserID:    user.ID,
		ProjectID: project.ID,
		Title:     "Done already",
		Status:    models.TaskStatusCompleted,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(task.CompletedAt)
	suite.WithinDuration(testNow, *task.CompletedAt, time.Second)
}

func (suite *ServiceTestSuite) TestCreateTask_TitleConflictScope() {
	user := suite.createTestUser("a@example.com")
	other := suite.createTestUser("b@example.com")
	launch := suite.createTestProject(user.ID, "Launch")
	backend := suite.createTestProject(user.ID, "Backend")
	othersProject := suite.createTestProject(other.ID, "Launch")

	_, err := suite.tasks.CreateTask(CreateTaskInput{UserID: user.ID, ProjectID: launch.ID, Title: "Deploy"})
	suite.Require().NoError(err)

	_, err = suite.tasks.CreateTask(CreateTaskInput{UserID: user.ID, ProjectID: launch.ID, Title: "Deploy "})
	suite.ErrorIs(err, ErrNameConflict)

	_, err = suite.tasks.CreateTask(CreateTaskInput{UserID: user.ID, ProjectID: backend.ID, Title: "Deploy"})
	suite.NoError(err)

	_, err = suite.tasks.CreateTask(CreateTaskInput{UserID: other.ID, ProjectID: othersProject.ID, Title: "Deploy"})
	suite.NoError(err)
}

func (suite *ServiceTestSuite) TestCreateTask_Validation() {
	user := suite.createTestUser("a@example.com")
	other := suite.createTestUser("b@example.com")
	foreign := suite.createTestProject(other.ID, "Theirs")
	project := suite.createTestProject(user.ID, "Mine")

	_, err := suite.tasks.CreateTask(CreateTaskInput{UserID: user.ID, Title: "No project"})
	suite.requireValidationField(err, "projectId")

	_, err = suite.tasks.CreateTask(CreateTaskInput{UserID: user.ID, ProjectID: project.ID, Title: "  "})
	suite.requireValidationField(err, "title")

	_, err = suite.tasks.CreateTask(CreateTaskInput{UserID: user.ID, ProjectID: foreign.ID, Title: "Sneaky"})
	suite.requireValidationField(err, "projectId")

	_, err = suite.tasks.CreateTask(CreateTaskInput{UserID: user.ID, ProjectID: project.ID, Title: "Bad", Priority: "CRITICAL"})
	suite.requireValidationField(err, "priority")

	_, err = suite.tasks.CreateTask(CreateTaskInput{UserID: user.ID, ProjectID: project.ID, Title: "Bad", Status: "DONE"})
	suite.requireValidationField(err, "status")

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	suite.Zero(count)
}

func (suite *ServiceTestSuite) TestCreateTask_StorageBackstop() {
	user := suite.createTestUser("a@example.com")
	project := suite.createTestProject(user.ID, "Launch")
	suite.createTestTask(user.ID, project.ID, "Deploy")

	racing := NewTaskService(suite.taskRepo, suite.projectRepo, NewNameValidator(suite.projectRepo, blindTaskRepo{suite.taskRepo}), nil)

	_, err := racing.CreateTask(CreateTaskInput{UserID: user.ID, ProjectID: project.ID, Title: "Deploy"})
	suite.ErrorIs(err, ErrNameConflict)
}

func (suite *ServiceTestSuite) TestUpdateTask_Lifecycle() {
	user := suite.createTestUser("a@example.com")
	project := suite.createTestProject(user.ID, "Launch")
	task := suite.createTestTask(user.ID, project.ID, "Deploy")

	update := func(status models.TaskStatus) *models.Task {
		updated, err := suite.tasks.UpdateTask(UpdateTaskInput{
			UserID:    user.ID,
			ID:        task.ID,
			ProjectID: project.ID,
			Title:     "Deploy",
			Status:    status,
			Priority:  models.TaskPriorityHigh,
		})
		suite.Require().NoError(err)
		return updated
	}

	updated := update(models.TaskStatusInProgress)
	suite.Nil(updated.CompletedAt)

	completedAt := testNow
	updated = update(models.TaskStatusCompleted)
	suite.Require().NotNil(updated.CompletedAt)
	suite.WithinDuration(completedAt, *updated.CompletedAt, time.Second)

	// Re-saving COMPLETED keeps the original stamp
	suite.tasks.now = func() time.Time { return testNow.Add(48 * time.Hour) }
	updated = update(models.TaskStatusCompleted)
	suite.Require().NotNil(updated.CompletedAt)
	suite.WithinDuration(completedAt, *updated.CompletedAt, time.Second)

	updated = update(models.TaskStatusTodo)
	suite.Nil(updated.CompletedAt)

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, task.ID).Error)
	suite.Nil(stored.CompletedAt)
	suite.Equal(models.TaskPriorityHigh, stored.Priority)
}

func (suite *ServiceTestSuite) TestUpdateTask_ReplacesOptionalFields() {
	user := suite.createTestUser("a@example.com")
	project := suite.createTestProject(user.ID, "Launch")
	due := testNow.Add(72 * time.Hour)

	task, err := suite.tasks.CreateTask(CreateTaskInput{
		UserID:      user.ID,
		ProjectID:   project.ID,
		Title:       "Deploy",
		Description: strPtr("details"),
		DueDate:     &due,
	})
	suite.Require().NoError(err)

	updated, err := suite.tasks.UpdateTask(UpdateTaskInput{UserID: user.ID, ID: task.ID, ProjectID: project.ID, Title: "Deploy"})
	suite.Require().NoError(err)
	suite.Nil(updated.Description)
	suite.Nil(updated.DueDate)
	suite.Equal(models.TaskStatusTodo, updated.Status)
	suite.Equal(models.TaskPriorityMedium, updated.Priority)
}

func (suite *ServiceTestSuite) TestUpdateTask_ConflictAndMove() {
	user := suite.createTestUser("a@example.com")
	launch := suite.createTestProject(user.ID, "Launch")
	backend := suite.createTestProject(user.ID, "Backend")
	task := suite.createTestTask(user.ID, launch.ID, "Deploy")
	suite.createTestTask(user.ID, launch.ID, "Test")
	suite.createTestTask(user.ID, backend.ID, "Deploy")

	_, err := suite.tasks.UpdateTask(UpdateTaskInput{UserID: user.ID, ID: task.ID, ProjectID: launch.ID, Title: "Test"})
	suite.ErrorIs(err, ErrNameConflict)

	_, err = suite.tasks.UpdateTask(UpdateTaskInput{UserID: user.ID, ID: task.ID, ProjectID: backend.ID, Title: "Deploy"})
	suite.ErrorIs(err, ErrNameConflict)

	moved, err := suite.tasks.UpdateTask(UpdateTaskInput{UserID: user.ID, ID: task.ID, ProjectID: backend.ID, Title: "Deploy v2"})
	suite.Require().NoError(err)
	suite.Equal(backend.ID, moved.ProjectID)
	suite.Equal("Backend", moved.Project.Name)
}

func (suite *ServiceTestSuite) TestTaskAccess_ForeignTaskIsNotFound() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	project := suite.createTestProject(owner.ID, "Launch")
	task := suite.createTestTask(owner.ID, project.ID, "Deploy")

	_, err := suite.tasks.GetTask(other.ID, task.ID)
	suite.ErrorIs(err, ErrTaskNotFound)

	_, err = suite.tasks.UpdateTask(UpdateTaskInput{UserID: other.ID, ID: task.ID, ProjectID: project.ID, Title: "Mine"})
	suite.ErrorIs(err, ErrTaskNotFound)

	suite.ErrorIs(suite.tasks.DeleteTask(other.ID, task.ID), ErrTaskNotFound)
	suite.ErrorIs(suite.tasks.DeleteTask(owner.ID, 9999), ErrTaskNotFound)

	suite.NoError(suite.tasks.DeleteTask(owner.ID, task.ID))
	_, err = suite.tasks.GetTask(owner.ID, task.ID)
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *ServiceTestSuite) TestListTasks() {
	user := suite.createTestUser("a@example.com")
	launch := suite.createTestProject(user.ID, "Launch")
	backend := suite.createTestProject(user.ID, "Backend")
	for _, title := range []string{"a", "b", "c"} {
		suite.createTestTask(user.ID, launch.ID, title)
	}
	done := suite.createTestTask(user.ID, backend.ID, "d")
	suite.db.Model(done).Update("status", models.TaskStatusCompleted)
	suite.createTestTask(suite.createTestUser("b@example.com").ID, launch.ID, "foreign")

	tasks, total, err := suite.tasks.ListTasks(ListTasksInput{UserID: user.ID, Pagination: utils.NewPaginationParams(1, 2)})
	suite.Require().NoError(err)
	suite.Equal(int64(4), total)
	suite.Len(tasks, 2)

	tasks, total, err = suite.tasks.ListTasks(ListTasksInput{UserID: user.ID, ProjectID: &launch.ID, Pagination: utils.NewPaginationParams(1, 20)})
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(tasks, 3)
	suite.Equal("Launch", tasks[0].Project.Name)

	completed := models.TaskStatusCompleted
	tasks, total, err = suite.tasks.ListTasks(ListTasksInput{UserID: user.ID, Status: &completed, Pagination: utils.NewPaginationParams(1, 20)})
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(done.ID, tasks[0].ID)

	bogus := models.TaskStatus("DONE")
	_, _, err = suite.tasks.ListTasks(ListTasksInput{UserID: user.ID, Status: &bogus})
	suite.requireValidationField(err, "status")
}

func (suite *ServiceTestSuite) TestTaskTitleExists() {
	user := suite.createTestUser("a@example.com")
	project := suite.createTestProject(user.ID, "Launch")
	task := suite.createTestTask(user.ID, project.ID, "Deploy")

	exists, err := suite.tasks.TitleExists(user.ID, project.ID, "Deploy", nil)
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = suite.tasks.TitleExists(user.ID, project.ID, "Deploy", &task.ID)
	suite.Require().NoError(err)
	suite.False(exists)

	_, err = suite.tasks.TitleExists(user.ID, 0, "", nil)
	suite.requireValidationField(err, "title")
	suite.requireValidationField(err, "projectId")
}

func (suite *ServiceTestSuite) TestSuggestTasks() {
	user := suite.createTestUser("a@example.com")
	project := suite.createTestProject(user.ID, "Launch")
	suite.createTestTask(user.ID, project.ID, "Write docs")

	due := testNow.Add(24 * time.Hour)
	suite.generator.tasks = []GeneratedTask{
		{Title: "Write docs", Description: "again"},
		{Title: "  Book venue ", Description: " call them ", DueDate: &due},
		{Title: "Book venue"},
		{Title: "   "},
	}

	suggestions, err := suite.tasks.SuggestTasks(context.Background(), user.ID, project.ID, "plan the launch")

	suite.Require().NoError(err)
	suite.Require().Len(suggestions, 2)
	suite.Equal("Write docs", suggestions[0].Title)
	suite.True(suggestions[0].TitleTaken)
	suite.Equal("Book venue", suggestions[1].Title)
	suite.Equal("call them", suggestions[1].Description)
	suite.False(suggestions[1].TitleTaken)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *ServiceTestSuite) TestSuggestTasks_Errors() {
	user := suite.createTestUser("a@example.com")
	project := suite.createTestProject(user.ID, "Launch")

	unconfigured := NewTaskService(suite.taskRepo, suite.projectRepo, suite.validator, nil)
	_, err := unconfigured.SuggestTasks(context.Background(), user.ID, project.ID, "text")
	suite.ErrorIs(err, ErrAIServiceNotConfigured)

	_, err = suite.tasks.SuggestTasks(context.Background(), user.ID, project.ID, " ")
	suite.requireValidationField(err, "text")
	suite.Zero(suite.generator.calls)

	_, err = suite.tasks.SuggestTasks(context.Background(), user.ID, project.ID, "text")
	suite.ErrorIs(err, ErrAINoTasksGenerated)

	suite.generator.err = errors.New("rate limited")
	_, err = suite.tasks.SuggestTasks(context.Background(), user.ID, project.ID, "text")
	suite.Error(err)
	suite.ErrorIs(err, ErrAIRequestFailed)
	suite.NotErrorIs(err, ErrAINoTasksGenerated)
}

// blindTaskRepo never reports an existing title
type blindTaskRepo struct {
	repository.TaskRepository
}

func (blindTaskRepo) TitleExists(uint64, uint64, string, *uint64) (bool, error) {
	return false, nil
}
