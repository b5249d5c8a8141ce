package response

import (
	"time"

	"accountms/internal/core/domain/user"
)

// User is the public account view. The password hash and reset token state
// never leave the server.
type User struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
	IsActive    bool       `json:"is_active"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Username = du.Username
	u.Email = string(du.Email)
	if du.FirstName.IsPresent {
		u.FirstName = &du.FirstName.Value
	}
	if du.LastName.IsPresent {
		u.LastName = &du.LastName.Value
	}
	u.Role = string(du.Role)
	u.CreatedAt = du.CreatedAt
	if du.LastLoginAt.IsPresent {
		u.LastLoginAt = &du.LastLoginAt.Value
	}
	u.IsActive = du.IsActive
}
