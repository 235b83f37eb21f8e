package services

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/taskflow-api/internal/models"
)

func (suite *ServiceTestSuite) storedToken(email string) *models.PasswordResetToken {
	var token models.PasswordResetToken
	suite.Require().NoError(suite.db.Where("email = ?", email).First(&token).Error)
	return &token
}

func (suite *ServiceTestSuite) TestRequestReset_UnknownEmailIsSilent() {
	err := suite.resets.RequestReset(context.Background(), "nobody@example.com")

	suite.NoError(err)
	suite.Empty(suite.mail.sent)

	var count int64
	suite.db.Model(&models.PasswordResetToken{}).Count(&count)
	suite.Zero(count)
}

func (suite *ServiceTestSuite) TestRequestReset_SendsLink() {
	_, err := suite.auth.Signup(SignupInput{Name: "Ada", Email: "ada@example.com", Password: "password123"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.resets.RequestReset(context.Background(), " ADA@example.com"))

	token := suite.storedToken("ada@example.com")
	suite.Len(token.Token, 64)
	suite.WithinDuration(testNow.Add(time.Hour), token.ExpiresAt, time.Second)

	suite.Require().Len(suite.mail.sent, 1)
	msg := suite.mail.sent[0]
	suite.Equal("ada@example.com", msg.To)
	suite.Contains(msg.HTML, "http://app.test/auth/reset-password?token="+token.Token)
}

func (suite *ServiceTestSuite) TestRequestReset_MailFailureIsReported() {
	suite.createTestUser("ada@example.com")
	suite.mail.err = errors.New("smtp down")

	err := suite.resets.RequestReset(context.Background(), "ada@example.com")
	suite.Error(err)
}

func (suite *ServiceTestSuite) TestResetPassword_SingleUse() {
	_, err := suite.auth.Signup(SignupInput{Name: "Ada", Email: "ada@example.com", Password: "password123"})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.resets.RequestReset(context.Background(), "ada@example.com"))
	token := suite.storedToken("ada@example.com")

	suite.Require().NoError(suite.resets.ResetPassword(token.Token, "brand-new-pass"))

	_, err = suite.auth.Login(LoginInput{Email: "ada@example.com", Password: "brand-new-pass"})
	suite.NoError(err)

	suite.ErrorIs(suite.resets.ResetPassword(token.Token, "another-pass"), ErrInvalidResetToken)
}

func (suite *ServiceTestSuite) TestResetPassword_ExpiredTokenIsRejectedAndDeleted() {
	suite.createTestUser("ada@example.com")
	suite.Require().NoError(suite.resets.RequestReset(context.Background(), "ada@example.com"))
	token := suite.storedToken("ada@example.com")

	suite.resets.now = func() time.Time { return testNow.Add(2 * time.Hour) }

	suite.ErrorIs(suite.resets.ResetPassword(token.Token, "brand-new-pass"), ErrInvalidResetToken)

	var count int64
	suite.db.Model(&models.PasswordResetToken{}).Count(&count)
	suite.Zero(count)
}

func (suite *ServiceTestSuite) TestResetPassword_Validation() {
	err := suite.resets.ResetPassword("", "short")

	suite.requireValidationField(err, "token")
	suite.requireValidationField(err, "newPassword")
	suite.ErrorIs(suite.resets.ResetPassword("unknown", "long-enough"), ErrInvalidResetToken)
}

func (suite *ServiceTestSuite) TestPurgeExpired() {
	for i, expires := range []time.Time{testNow.Add(-time.Minute), testNow.Add(-time.Hour), testNow.Add(time.Hour)} {
		suite.Require().NoError(suite.resetRepo.Create(&models.PasswordResetToken{
			Email:     "ada@example.com",
			Token:     string(rune('a'+i)) + "-token",
			ExpiresAt: expires,
		}))
	}

	n, err := suite.resets.PurgeExpired()

	suite.Require().NoError(err)
	suite.Equal(int64(2), n)

	var count int64
	suite.db.Model(&models.PasswordResetToken{}).Count(&count)
	suite.Equal(int64(1), count)
}
