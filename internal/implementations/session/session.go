package session

import (
	"strconv"
	"time"

	c "accountms/internal/core/domain/common"
	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/user"

	"github.com/golang-jwt/jwt/v5"
)

type claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// JWTIssuer issues and validates stateless HS256-signed session tokens.
// Claims are fixed at issuance; validation checks signature, issuer,
// audience and expiry.
type JWTIssuer struct {
	secretKey     []byte
	issuer        string
	audience      string
	validDuration time.Duration
	now           func() time.Time
}

func NewJWTIssuer(
	secretKey string,
	issuer string,
	audience string,
	validDuration time.Duration,
	now func() time.Time,
) *JWTIssuer {
	if secretKey == "" {
		panic("session token secret key must not be empty")
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &JWTIssuer{
		secretKey:     []byte(secretKey),
		issuer:        issuer,
		audience:      audience,
		validDuration: validDuration,
		now:           now,
	}
}

func (i *JWTIssuer) Issue(u user.User) (user.SessionToken, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(int64(u.ID), 10),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validDuration)),
		},
		Name:  u.Username,
		Email: string(u.Email),
		Role:  string(u.Role),
	})
	signedToken, err := token.SignedString(i.secretKey)
	if err != nil {
		return "", err
	}
	return user.SessionToken(signedToken), nil
}

func (i *JWTIssuer) Validate(token user.SessionToken) (user.SessionClaims, error) {
	parsedClaims := &claims{}
	parsedToken, err := jwt.ParseWithClaims(
		string(token),
		parsedClaims,
		func(t *jwt.Token) (interface{}, error) {
			return i.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsedToken.Valid {
		return user.SessionClaims{}, user.ErrInvalidSessionToken
	}

	userID, err := strconv.ParseInt(parsedClaims.Subject, 10, 64)
	if err != nil {
		return user.SessionClaims{}, user.ErrInvalidSessionToken
	}
	return user.SessionClaims{
		UserID:   user.ID(userID),
		Username: parsedClaims.Name,
		Email:    c.Email(parsedClaims.Email),
		Role:     user.Role(parsedClaims.Role),
	}, nil
}
