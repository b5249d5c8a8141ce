package user

import (
	"errors"
)

var (
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUserDoesNotExist      = errors.New("user does not exist")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrUserIsNotActive       = errors.New("account is deactivated")
	ErrPermissionDenied      = errors.New("permission denied")
)

var (
	ErrInvalidSessionToken = errors.New("invalid session token")
)

var (
	ErrInvalidResetToken     = errors.New("invalid or expired reset token")
	ErrResetTokenExpired     = errors.New("reset token has expired")
	ErrResetTokenAlreadyUsed = errors.New("reset token has already been used")
)
