package user

import (
	"context"
	"testing"
	"time"

	c "accountms/internal/core/domain/common"
	"accountms/internal/core/domain/user"
	"accountms/internal/db"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	USERNAME      = "test-user"
	EMAIL         = "test@test.test"
	PASSWORD_HASH = "test-password-hash"
	RESET_TOKEN   = "test-reset-token-test-reset-toke"
)

var NOW time.Time = time.Date(2023, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	if db.TestDatabaseURL() == "" {
		suite.T().Skip("TEST_POSTGRESQL_URL is not set.")
	}
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUserRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createUser(username string, email string) user.User {
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Username:     username,
		Email:        c.Email(email),
		PasswordHash: user.PasswordHash(PASSWORD_HASH),
		Role:         user.RoleUser,
		CreatedAt:    NOW,
		IsActive:     true,
	})
	suite.Require().NoError(err)
	return u
}

func (suite *testSuite) TestCreateSuccess() {
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Username:     USERNAME,
		Email:        c.Email(EMAIL),
		PasswordHash: user.PasswordHash(PASSWORD_HASH),
		FirstName:    c.NewOptional("John", true),
		Role:         user.RoleAdmin,
		CreatedAt:    NOW,
		IsActive:     true,
	})

	assert := suite.Require()
	assert.NoError(err)
	assert.True(u.ID > 0)
	assert.Equal(USERNAME, u.Username)
	assert.Equal(c.Email(EMAIL), u.Email)
	assert.Equal(user.PasswordHash(PASSWORD_HASH), u.PasswordHash)
	assert.Equal(c.NewOptional("John", true), u.FirstName)
	assert.False(u.LastName.IsPresent)
	assert.Equal(user.RoleAdmin, u.Role)
	assert.True(NOW.Equal(u.CreatedAt))
	assert.False(u.LastLoginAt.IsPresent)
	assert.Equal(int64(0), u.TotalLogins)
	assert.True(u.IsActive)
	assert.False(u.ResetToken.IsPresent)
}

func (suite *testSuite) TestCreateDuplicateUsername() {
	suite.createUser(USERNAME, EMAIL)

	_, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Username:     USERNAME,
		Email:        c.Email("other@test.test"),
		PasswordHash: user.PasswordHash(PASSWORD_HASH),
		Role:         user.RoleUser,
		CreatedAt:    NOW,
		IsActive:     true,
	})

	suite.Require().ErrorIs(err, user.ErrUsernameAlreadyExists)
}

func (suite *testSuite) TestCreateDuplicateEmail() {
	suite.createUser(USERNAME, EMAIL)

	_, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Username:     "other-user",
		Email:        c.Email(EMAIL),
		PasswordHash: user.PasswordHash(PASSWORD_HASH),
		Role:         user.RoleUser,
		CreatedAt:    NOW,
		IsActive:     true,
	})

	suite.Require().ErrorIs(err, user.ErrEmailAlreadyExists)
}

func (suite *testSuite) TestGetByIDSuccess() {
	created := suite.createUser(USERNAME, EMAIL)

	u, err := suite.repo.GetByID(context.Background(), created.ID)

	assert := suite.Require()
	assert.NoError(err)
	assert.Equal(created.ID, u.ID)
	assert.Equal(USERNAME, u.Username)
}

func (suite *testSuite) TestGetByIDNotFound() {
	_, err := suite.repo.GetByID(context.Background(), user.ID(12345))

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestGetByUsername() {
	created := suite.createUser(USERNAME, EMAIL)

	u, err := suite.repo.GetByUsername(context.Background(), USERNAME)

	assert := suite.Require()
	assert.NoError(err)
	assert.Equal(created.ID, u.ID)

	_, err = suite.repo.GetByUsername(context.Background(), "unknown")
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestGetByEmail() {
	created := suite.createUser(USERNAME, EMAIL)

	u, err := suite.repo.GetByEmail(context.Background(), c.Email(EMAIL))

	assert := suite.Require()
	assert.NoError(err)
	assert.Equal(created.ID, u.ID)

	_, err = suite.repo.GetByEmail(context.Background(), c.Email("unknown@test.test"))
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestList() {
	first := suite.createUser("user-1", "user-1@test.test")
	second := suite.createUser("user-2", "user-2@test.test")

	users, err := suite.repo.List(context.Background())

	assert := suite.Require()
	assert.NoError(err)
	assert.Len(users, 2)
	assert.Equal(first.ID, users[0].ID)
	assert.Equal(second.ID, users[1].ID)
}

func (suite *testSuite) TestUpdate() {
	created := suite.createUser(USERNAME, EMAIL)

	u, err := suite.repo.Update(context.Background(), user.UpdateUserInput{
		UserID:            created.ID,
		DoFirstNameUpdate: true,
		FirstName:         c.NewOptional("Jane", true),
		DoIsActiveUpdate:  true,
		IsActive:          false,
	})

	assert := suite.Require()
	assert.NoError(err)
	assert.Equal(c.NewOptional("Jane", true), u.FirstName)
	assert.False(u.LastName.IsPresent)
	assert.False(u.IsActive)

	u, err = suite.repo.GetByID(context.Background(), created.ID)
	assert.NoError(err)
	assert.Equal(c.NewOptional("Jane", true), u.FirstName)
	assert.False(u.IsActive)
}

func (suite *testSuite) TestUpdateNotFound() {
	_, err := suite.repo.Update(context.Background(), user.UpdateUserInput{
		UserID:           user.ID(12345),
		DoIsActiveUpdate: true,
		IsActive:         false,
	})

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestSetPassword() {
	created := suite.createUser(USERNAME, EMAIL)

	err := suite.repo.SetPassword(context.Background(), created.ID, user.PasswordHash("new-hash"))

	assert := suite.Require()
	assert.NoError(err)

	u, err := suite.repo.GetByID(context.Background(), created.ID)
	assert.NoError(err)
	assert.Equal(user.PasswordHash("new-hash"), u.PasswordHash)
}

func (suite *testSuite) TestRecordLogIn() {
	created := suite.createUser(USERNAME, EMAIL)

	assert := suite.Require()
	assert.NoError(suite.repo.RecordLogIn(context.Background(), created.ID, NOW))
	assert.NoError(suite.repo.RecordLogIn(context.Background(), created.ID, NOW.Add(time.Hour)))

	u, err := suite.repo.GetByID(context.Background(), created.ID)
	assert.NoError(err)
	assert.True(u.LastLoginAt.IsPresent)
	assert.True(NOW.Add(time.Hour).Equal(u.LastLoginAt.Value))
	assert.Equal(int64(2), u.TotalLogins)
}

func (suite *testSuite) TestSetPasswordResetTokenOverwritesPreviousToken() {
	created := suite.createUser(USERNAME, EMAIL)

	assert := suite.Require()
	assert.NoError(suite.repo.SetPasswordResetToken(context.Background(), user.SetPasswordResetTokenInput{
		UserID:    created.ID,
		Token:     user.PasswordResetToken("first-token"),
		ExpiresAt: NOW.Add(time.Hour),
	}))
	assert.NoError(suite.repo.SetPasswordResetToken(context.Background(), user.SetPasswordResetTokenInput{
		UserID:    created.ID,
		Token:     user.PasswordResetToken(RESET_TOKEN),
		ExpiresAt: NOW.Add(2 * time.Hour),
	}))

	_, err := suite.repo.GetByResetToken(context.Background(), user.PasswordResetToken("first-token"))
	assert.ErrorIs(err, user.ErrUserDoesNotExist)

	u, err := suite.repo.GetByResetToken(context.Background(), user.PasswordResetToken(RESET_TOKEN))
	assert.NoError(err)
	assert.Equal(created.ID, u.ID)
	assert.True(NOW.Add(2*time.Hour).Equal(u.ResetTokenExpiry.Value))
	assert.False(u.ResetTokenIsUsed)
}

func (suite *testSuite) TestConsumePasswordResetToken() {
	created := suite.createUser(USERNAME, EMAIL)
	assert := suite.Require()
	assert.NoError(suite.repo.SetPasswordResetToken(context.Background(), user.SetPasswordResetTokenInput{
		UserID:    created.ID,
		Token:     user.PasswordResetToken(RESET_TOKEN),
		ExpiresAt: NOW.Add(time.Hour),
	}))

	err := suite.repo.ConsumePasswordResetToken(context.Background(), user.ConsumePasswordResetTokenInput{
		UserID:          created.ID,
		NewPasswordHash: user.PasswordHash("new-hash"),
	})

	assert.NoError(err)
	u, err := suite.repo.GetByID(context.Background(), created.ID)
	assert.NoError(err)
	assert.Equal(user.PasswordHash("new-hash"), u.PasswordHash)
	assert.False(u.ResetToken.IsPresent)
	assert.False(u.ResetTokenExpiry.IsPresent)
	assert.True(u.ResetTokenIsUsed)
}

func (suite *testSuite) TestConsumePasswordResetTokenSecondAttemptFails() {
	created := suite.createUser(USERNAME, EMAIL)
	assert := suite.Require()
	assert.NoError(suite.repo.SetPasswordResetToken(context.Background(), user.SetPasswordResetTokenInput{
		UserID:    created.ID,
		Token:     user.PasswordResetToken(RESET_TOKEN),
		ExpiresAt: NOW.Add(time.Hour),
	}))
	assert.NoError(suite.repo.ConsumePasswordResetToken(context.Background(), user.ConsumePasswordResetTokenInput{
		UserID:          created.ID,
		NewPasswordHash: user.PasswordHash("new-hash"),
	}))

	err := suite.repo.ConsumePasswordResetToken(context.Background(), user.ConsumePasswordResetTokenInput{
		UserID:          created.ID,
		NewPasswordHash: user.PasswordHash("other-hash"),
	})

	assert.ErrorIs(err, user.ErrResetTokenAlreadyUsed)
	u, err := suite.repo.GetByID(context.Background(), created.ID)
	assert.NoError(err)
	assert.Equal(user.PasswordHash("new-hash"), u.PasswordHash)
}
