package auth

import (
	"context"

	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/user"
	"accountms/internal/core/services"
)

type contextAuthToken string

const CONTEXT_AUTH_TOKEN_KEY = contextAuthToken("authToken")

type Input interface {
	WithAuthenticatedUser(u user.User) Input
}

type service[T Input, S any] struct {
	sessionTokenIssuer user.SessionTokenIssuer
	userRepository     user.UserRepository
	inner              services.Service[T, S]
}

// WithAuthentication resolves the bearer token from the request context,
// validates its signature and claims and loads the account it names. The
// inner service receives the authenticated user on its input.
func WithAuthentication[T Input, S any](
	sessionTokenIssuer user.SessionTokenIssuer,
	userRepository user.UserRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if sessionTokenIssuer == nil {
		panic(e.NewNilArgumentError("sessionTokenIssuer"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		sessionTokenIssuer: sessionTokenIssuer,
		userRepository:     userRepository,
		inner:              inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	authToken, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(user.SessionToken)
	if !ok {
		return result, user.ErrInvalidSessionToken
	}
	claims, err := s.sessionTokenIssuer.Validate(authToken)
	if err != nil {
		return result, user.ErrInvalidSessionToken
	}
	u, err := s.userRepository.GetByID(ctx, claims.UserID)
	if err != nil {
		return result, user.ErrInvalidSessionToken
	}
	if !u.IsActive {
		return result, user.ErrUserIsNotActive
	}
	return s.inner.Run(ctx, input.WithAuthenticatedUser(u).(T))
}
