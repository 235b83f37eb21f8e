package services

import (
	"github.com/yukikurage/taskflow-api/internal/models"
	"github.com/yukikurage/taskflow-api/internal/utils"
)

func (suite *ServiceTestSuite) createAdmin() *models.User {
	admin, err := suite.admin.CreateUser(CreateUserInput{
		Name:     "Root",
		Email:    "root@example.com",
		Password: "password123",
		Role:     models.RoleAdmin,
	})
	suite.Require().NoError(err)
	return admin
}

func (suite *ServiceTestSuite) TestAdminCreateUser() {
	admin := suite.createAdmin()
	suite.True(admin.IsAdmin())

	user, err := suite.admin.CreateUser(CreateUserInput{Name: "Ada", Email: "ada@example.com", Password: "password123"})
	suite.Require().NoError(err)
	suite.Equal(models.RoleUser, user.Role)

	_, err = suite.admin.CreateUser(CreateUserInput{Name: "Ada", Email: "x@example.com", Password: "password123", Role: "OWNER"})
	suite.requireValidationField(err, "role")
}

func (suite *ServiceTestSuite) TestAdminUpdateUser() {
	admin := suite.createAdmin()
	user := suite.createTestUser("ada@example.com")

	blocked := true
	role := models.RoleAdmin
	updated, err := suite.admin.UpdateUser(admin.ID, UpdateUserInput{ID: user.ID, Name: strPtr("Ada"), Role: &role, IsBlocked: &blocked})
	suite.Require().NoError(err)
	suite.Equal("Ada", updated.Name)
	suite.True(updated.IsAdmin())
	suite.True(updated.IsBlocked)

	_, err = suite.admin.UpdateUser(admin.ID, UpdateUserInput{ID: 9999, Name: strPtr("Ghost")})
	suite.ErrorIs(err, ErrUserNotFound)
}

func (suite *ServiceTestSuite) TestAdminCannotDemoteOrBlockSelf() {
	admin := suite.createAdmin()

	role := models.RoleUser
	_, err := suite.admin.UpdateUser(admin.ID, UpdateUserInput{ID: admin.ID, Role: &role})
	suite.ErrorIs(err, ErrCannotModifySelf)

	blocked := true
	_, err = suite.admin.UpdateUser(admin.ID, UpdateUserInput{ID: admin.ID, IsBlocked: &blocked})
	suite.ErrorIs(err, ErrCannotModifySelf)

	updated, err := suite.admin.UpdateUser(admin.ID, UpdateUserInput{ID: admin.ID, Name: strPtr("Root Admin")})
	suite.Require().NoError(err)
	suite.Equal("Root Admin", updated.Name)

	suite.ErrorIs(suite.admin.DeleteUser(admin.ID, admin.ID), ErrCannotModifySelf)
}

func (suite *ServiceTestSuite) TestAdminDeleteUser_Cascades() {
	admin := suite.createAdmin()
	user := suite.createTestUser("ada@example.com")
	project := suite.createTestProject(user.ID, "Launch")
	suite.createTestTask(user.ID, project.ID, "Deploy")
	suite.Require().NoError(suite.db.Create(&models.PasswordResetToken{Email: user.Email, Token: "tok", ExpiresAt: testNow}).Error)

	suite.Require().NoError(suite.admin.DeleteUser(admin.ID, user.ID))

	for _, model := range []interface{}{&models.Project{}, &models.Task{}, &models.PasswordResetToken{}} {
		var count int64
		suite.db.Model(model).Count(&count)
		suite.Zero(count)
	}

	suite.ErrorIs(suite.admin.DeleteUser(admin.ID, user.ID), ErrUserNotFound)
}

func (suite *ServiceTestSuite) TestAdminListUsers() {
	suite.createAdmin()
	suite.createTestUser("a@example.com")
	suite.createTestUser("b@example.com")

	users, total, err := suite.admin.ListUsers(utils.NewPaginationParams(2, 2))

	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Require().Len(users, 1)
	suite.Equal("b@example.com", users[0].Email)
}

func (suite *ServiceTestSuite) TestEnsureAdmin() {
	user, err := suite.admin.EnsureAdmin("Boss", "", "password123")
	suite.NoError(err)
	suite.Nil(user)

	created, err := suite.admin.EnsureAdmin("Boss", "Boss@Example.com", "password123")
	suite.Require().NoError(err)
	suite.True(created.IsAdmin())
	suite.Equal("boss@example.com", created.Email)

	again, err := suite.admin.EnsureAdmin("Boss", "boss@example.com", "password123")
	suite.Require().NoError(err)
	suite.Equal(created.ID, again.ID)

	existing := suite.createTestUser("promote@example.com")
	promoted, err := suite.admin.EnsureAdmin("", "promote@example.com", "")
	suite.Require().NoError(err)
	suite.Equal(existing.ID, promoted.ID)
	suite.True(promoted.IsAdmin())
}
