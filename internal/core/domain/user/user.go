package user

import (
	"fmt"
	"time"

	c "accountms/internal/core/domain/common"
	e "accountms/internal/core/domain/errors"
)

const (
	MaxUsernameLength = 50
	MaxEmailLength    = 100
)

type ID int64

type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// PasswordResetToken is an opaque random string with no decodable structure,
// valid only by repository lookup.
type PasswordResetToken string

func (t PasswordResetToken) String() string {
	return "***"
}

type User struct {
	ID               ID
	Username         string
	Email            c.Email
	PasswordHash     PasswordHash
	FirstName        c.Optional[string]
	LastName         c.Optional[string]
	Role             Role
	CreatedAt        time.Time
	LastLoginAt      c.Optional[time.Time]
	TotalLogins      int64
	IsActive         bool
	ResetToken       c.Optional[PasswordResetToken]
	ResetTokenExpiry c.Optional[time.Time]
	ResetTokenIsUsed bool
}

func (u *User) Validate() error {
	if u.Username == "" {
		return e.NewInvalidStateError(fmt.Sprintf("username is not set for user %d", u.ID))
	}
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %d", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	if !u.Role.IsValid() {
		return e.NewInvalidStateError(fmt.Sprintf("invalid role %q for user %d", u.Role, u.ID))
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasValidResetToken reports whether the user holds a reset token that is
// neither consumed nor expired at the given moment.
func (u *User) HasValidResetToken(now time.Time) bool {
	if !u.ResetToken.IsPresent {
		return false
	}
	if u.ResetTokenIsUsed {
		return false
	}
	if !u.ResetTokenExpiry.IsPresent {
		return false
	}
	return !now.After(u.ResetTokenExpiry.Value)
}
