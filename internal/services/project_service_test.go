package services

import (
	"errors"
	"strings"

	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/repository"
)

func (suite *ServiceTestSuite) TestCreateProject_Success() {
	user := suite.createTestUser("a@example.com")

	project, err := suite.projects.CreateProject(CreateProjectInput{
		UserID:      user.ID,
		Name:        "  Launch  ",
		Description: strPtr("   "),
		Color:       strPtr("#ff0000"),
	})

	suite.Require().NoError(err)
	suite.Equal("Launch", project.Name)
	suite.Nil(project.Description)
	suite.Equal("#ff0000", *project.Color)
	suite.Equal(models.ProjectStatusActive, project.Status)
	suite.NotZero(project.ID)
}

func (suite *ServiceTestSuite) TestCreateProject_NameConflictIsPerUser() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")

	_, err := suite.projects.CreateProject(CreateProjectInput{UserID: alice.ID, Name: "Launch"})
	suite.Require().NoError(err)

	_, err = suite.projects.CreateProject(CreateProjectInput{UserID: alice.ID, Name: " Launch "})
	suite.ErrorIs(err, ErrNameConflict)

	_, err = suite.projects.CreateProject(CreateProjectInput{UserID: bob.ID, Name: "Launch"})
	suite.NoError(err)

	var count int64
	suite.db.Model(&models.Project{}).Where("user_id = ?", alice.ID).Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *ServiceTestSuite) TestCreateProject_NameIsCaseSensitive() {
	user := suite.createTestUser("a@example.com")

	_, err := suite.projects.CreateProject(CreateProjectInput{UserID: user.ID, Name: "Launch"})
	suite.Require().NoError(err)

	_, err = suite.projects.CreateProject(CreateProjectInput{UserID: user.ID, Name: "launch"})
	suite.NoError(err)
}

func (suite *ServiceTestSuite) TestCreateProject_Validation() {
	user := suite.createTestUser("a@example.com")

	_, err := suite.projects.CreateProject(CreateProjectInput{UserID: user.ID, Name: "   "})
	suite.requireValidationField(err, "name")

	_, err = suite.projects.CreateProject(CreateProjectInput{UserID: user.ID, Name: strings.Repeat("x", 256)})
	suite.requireValidationField(err, "name")

	_, err = suite.projects.CreateProject(CreateProjectInput{UserID: user.ID, Name: "Ok", Status: "PAUSED"})
	suite.requireValidationField(err, "status")
}

func (suite *ServiceTestSuite) TestCreateProject_StorageBackstop() {
	user := suite.createTestUser("a@example.com")
	suite.createTestProject(user.ID, "Launch")

	// A validator that never sees the existing row simulates a concurrent writer
	racing := NewProjectService(suite.projectRepo, NewNameValidator(blindProjectRepo{suite.projectRepo}, suite.taskRepo))

	_, err := racing.CreateProject(CreateProjectInput{UserID: user.ID, Name: "Launch"})
	suite.ErrorIs(err, ErrNameConflict)
}

func (suite *ServiceTestSuite) TestUpdateProject() {
	user := suite.createTestUser("a@example.com")
	project := suite.createTestProject(user.ID, "Launch")
	suite.createTestProject(user.ID, "Backend")

	archived := models.ProjectStatusArchived
	updated, err := suite.projects.UpdateProject(UpdateProjectInput{
		UserID:      user.ID,
		ID:          project.ID,
		Name:        "Launch",
		Description: strPtr("Go live"),
		Status:      &archived,
	})
	suite.Require().NoError(err)
	suite.Equal("Go live", *updated.Description)
	suite.Equal(models.ProjectStatusArchived, updated.Status)

	_, err = suite.projects.UpdateProject(UpdateProjectInput{UserID: user.ID, ID: project.ID, Name: "Backend"})
	suite.ErrorIs(err, ErrNameConflict)

	updated, err = suite.projects.UpdateProject(UpdateProjectInput{UserID: user.ID, ID: project.ID, Name: "Release"})
	suite.Require().NoError(err)
	suite.Equal("Release", updated.Name)
	suite.Equal("Go live", *updated.Description)
}

func (suite *ServiceTestSuite) TestUpdateProject_ForeignProjectIsNotFound() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	project := suite.createTestProject(owner.ID, "Launch")

	_, err := suite.projects.UpdateProject(UpdateProjectInput{UserID: other.ID, ID: project.ID, Name: "Mine"})
	suite.ErrorIs(err, ErrProjectNotFound)

	_, err = suite.projects.GetProject(other.ID, project.ID)
	suite.ErrorIs(err, ErrProjectNotFound)

	err = suite.projects.DeleteProject(other.ID, project.ID)
	suite.ErrorIs(err, ErrProjectNotFound)
}

func (suite *ServiceTestSuite) TestDeleteProject_CascadesTasks() {
	user := suite.createTestUser("a@example.com")
	project := suite.createTestProject(user.ID, "Launch")
	keep := suite.createTestProject(user.ID, "Keep")
	suite.createTestTask(user.ID, project.ID, "one")
	suite.createTestTask(user.ID, project.ID, "two")
	suite.createTestTask(user.ID, keep.ID, "three")

	suite.Require().NoError(suite.projects.DeleteProject(user.ID, project.ID))

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	suite.Equal(int64(1), count)

	_, err := suite.projects.GetProject(user.ID, project.ID)
	suite.ErrorIs(err, ErrProjectNotFound)
}

func (suite *ServiceTestSuite) TestListAndGetProjects() {
	user := suite.createTestUser("a@example.com")
	project := suite.createTestProject(user.ID, "Launch")
	suite.createTestTask(user.ID, project.ID, "one")
	suite.createTestProject(suite.createTestUser("b@example.com").ID, "Other")

	projects, err := suite.projects.ListProjects(user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(projects, 1)
	suite.Len(projects[0].Tasks, 1)

	got, err := suite.projects.GetProject(user.ID, project.ID)
	suite.Require().NoError(err)
	suite.Len(got.Tasks, 1)
}

func (suite *ServiceTestSuite) TestProjectNameExists() {
	user := suite.createTestUser("a@example.com")
	project := suite.createTestProject(user.ID, "Launch")

	exists, err := suite.projects.NameExists(user.ID, " Launch ", nil)
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = suite.projects.NameExists(user.ID, "Launch", &project.ID)
	suite.Require().NoError(err)
	suite.False(exists)

	_, err = suite.projects.NameExists(user.ID, "", nil)
	suite.requireValidationField(err, "name")
}

// blindProjectRepo never reports an existing name
type blindProjectRepo struct {
	repository.ProjectRepository
}

func (blindProjectRepo) NameExists(uint64, string, *uint64) (bool, error) {
	return false, nil
}

// failingProjectRepo fails every lookup
type failingProjectRepo struct {
	repository.ProjectRepository
}

func (failingProjectRepo) NameExists(uint64, string, *uint64) (bool, error) {
	return false, errors.New("connection reset")
}

func (suite *ServiceTestSuite) TestCreateProject_StoreErrorIsWrapped() {
	svc := NewProjectService(suite.projectRepo, NewNameValidator(failingProjectRepo{suite.projectRepo}, suite.taskRepo))

	_, err := svc.CreateProject(CreateProjectInput{UserID: 1, Name: "Launch"})
	suite.Error(err)
	suite.NotErrorIs(err, ErrNameConflict)
	_, isValidation := IsValidationError(err)
	suite.False(isValidation)
}
