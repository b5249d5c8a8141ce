package user

import c "accountms/internal/core/domain/common"

// SessionToken is a self-contained signed token; the system holds no
// server-side session state.
type SessionToken string

// SessionClaims is the identity carried by a session token. Claims are fixed
// at issuance and never mutated afterwards.
type SessionClaims struct {
	UserID   ID
	Username string
	Email    c.Email
	Role     Role
}

type SessionTokenIssuer interface {
	Issue(u User) (SessionToken, error)
	Validate(token SessionToken) (SessionClaims, error)
}
