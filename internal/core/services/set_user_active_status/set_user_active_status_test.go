package setuseractivestatus

import (
	"context"
	"testing"
	"time"

	"accountms/internal/core/domain/activity"
	"accountms/internal/core/domain/logging"
	"accountms/internal/core/domain/user"
	"accountms/internal/core/services"

	"github.com/stretchr/testify/require"
)

var NOW = time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)

type suite struct {
	log            *logging.FakeLogger
	userRepo       *user.FakeUserRepository
	activityStream *activity.FakeStream
}

func setupSuite() *suite {
	userRepo := user.NewFakeUserRepository()
	userRepo.Users = []user.User{
		{ID: 1, Username: "admin", Role: user.RoleAdmin, IsActive: true},
		{ID: 2, Username: "alice", Role: user.RoleUser, IsActive: true},
	}
	return &suite{
		log:            logging.NewFakeLogger(),
		userRepo:       userRepo,
		activityStream: activity.NewFakeStream(),
	}
}

func (s *suite) createService() services.Service[Input, Result] {
	return New(s.log, s.userRepo, s.activityStream, func() time.Time { return NOW })
}

func TestAdminCanDeactivateUser(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	input := Input{TargetUserID: 2, IsActive: false}
	input.User = suite.userRepo.Users[0]
	result, err := service.Run(context.Background(), input)

	// Verify ---
	require.NoError(t, err)
	require.False(t, result.User.IsActive)
	require.Equal(t, 1, suite.activityStream.PublishedCount())
}

func TestAdminCanReactivateUser(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	suite.userRepo.Users[1].IsActive = false
	service := suite.createService()

	// Exercise ---
	input := Input{TargetUserID: 2, IsActive: true}
	input.User = suite.userRepo.Users[0]
	result, err := service.Run(context.Background(), input)

	// Verify ---
	require.NoError(t, err)
	require.True(t, result.User.IsActive)
}

func TestNonAdminIsDenied(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	input := Input{TargetUserID: 1, IsActive: false}
	input.User = suite.userRepo.Users[1]
	_, err := service.Run(context.Background(), input)

	// Verify ---
	require.ErrorIs(t, err, user.ErrPermissionDenied)
}

func TestAdminCanNotDeactivateThemselves(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	input := Input{TargetUserID: 1, IsActive: false}
	input.User = suite.userRepo.Users[0]
	_, err := service.Run(context.Background(), input)

	// Verify ---
	require.ErrorIs(t, err, user.ErrPermissionDenied)
	u, getErr := suite.userRepo.GetByID(context.Background(), 1)
	require.NoError(t, getErr)
	require.True(t, u.IsActive)
}

func TestUnknownTargetUser(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	input := Input{TargetUserID: 42, IsActive: false}
	input.User = suite.userRepo.Users[0]
	_, err := service.Run(context.Background(), input)

	// Verify ---
	require.ErrorIs(t, err, user.ErrUserDoesNotExist)
}
