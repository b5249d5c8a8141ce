package user

import "context"

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

type PasswordResetTokenGenerator interface {
	GenerateResetToken() PasswordResetToken
}

type PasswordResetTokenSender interface {
	SendResetToken(ctx context.Context, u User, token PasswordResetToken) error
}
