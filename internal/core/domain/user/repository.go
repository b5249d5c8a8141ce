package user

import (
	"context"
	"time"

	c "accountms/internal/core/domain/common"
)

type CreateUserInput struct {
	Username     string
	Email        c.Email
	PasswordHash PasswordHash
	FirstName    c.Optional[string]
	LastName     c.Optional[string]
	Role         Role
	CreatedAt    time.Time
	IsActive     bool
}

type UpdateUserInput struct {
	UserID            ID
	DoFirstNameUpdate bool
	FirstName         c.Optional[string]
	DoLastNameUpdate  bool
	LastName          c.Optional[string]
	DoIsActiveUpdate  bool
	IsActive          bool
}

type SetPasswordResetTokenInput struct {
	UserID    ID
	Token     PasswordResetToken
	ExpiresAt time.Time
}

type ConsumePasswordResetTokenInput struct {
	UserID          ID
	NewPasswordHash PasswordHash
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	GetByResetToken(ctx context.Context, token PasswordResetToken) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, input UpdateUserInput) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
	// RecordLogIn sets the last-login timestamp and increments the login
	// counter. Best effort, no cross-request ordering guarantees.
	RecordLogIn(ctx context.Context, id ID, at time.Time) error
	// SetPasswordResetToken stores a fresh reset token, discarding any
	// previous token state and clearing the used flag.
	SetPasswordResetToken(ctx context.Context, input SetPasswordResetTokenInput) error
	// ConsumePasswordResetToken installs the new password hash, marks the
	// token used and clears the token and its expiry in a single conditional
	// update. The update succeeds only if the token is still unused, so of
	// two concurrent consumers exactly one wins; the loser gets
	// ErrResetTokenAlreadyUsed.
	ConsumePasswordResetToken(ctx context.Context, input ConsumePasswordResetTokenInput) error
}
