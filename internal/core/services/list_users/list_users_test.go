package listusers

import (
	"context"
	"testing"

	"accountms/internal/core/domain/logging"
	"accountms/internal/core/domain/user"

	"github.com/stretchr/testify/require"
)

func setupRepo() *user.FakeUserRepository {
	userRepo := user.NewFakeUserRepository()
	userRepo.Users = []user.User{
		{ID: 1, Username: "admin", Role: user.RoleAdmin, IsActive: true},
		{ID: 2, Username: "alice", Role: user.RoleUser, IsActive: true},
		{ID: 3, Username: "bob", Role: user.RoleUser, IsActive: false},
	}
	return userRepo
}

func TestAdminCanListUsers(t *testing.T) {
	// Setup ---
	userRepo := setupRepo()
	service := New(logging.NewFakeLogger(), userRepo)

	// Exercise ---
	input := Input{}
	input.User = userRepo.Users[0]
	result, err := service.Run(context.Background(), input)

	// Verify ---
	require.NoError(t, err)
	require.Len(t, result.Users, 3)
}

func TestNonAdminIsDenied(t *testing.T) {
	// Setup ---
	userRepo := setupRepo()
	service := New(logging.NewFakeLogger(), userRepo)

	// Exercise ---
	input := Input{}
	input.User = userRepo.Users[1]
	_, err := service.Run(context.Background(), input)

	// Verify ---
	require.ErrorIs(t, err, user.ErrPermissionDenied)
}
