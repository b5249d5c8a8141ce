package getuserbysessiontoken

import (
	"context"
	"errors"

	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/logging"
	"accountms/internal/core/domain/user"
	"accountms/internal/core/services"
)

type Input struct {
	Token user.SessionToken
}

type Result struct {
	User user.User
}

type service struct {
	log                logging.Logger
	userRepository     user.UserRepository
	sessionTokenIssuer user.SessionTokenIssuer
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	sessionTokenIssuer user.SessionTokenIssuer,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if sessionTokenIssuer == nil {
		panic(e.NewNilArgumentError("sessionTokenIssuer"))
	}
	return &service{
		log:                log,
		userRepository:     userRepository,
		sessionTokenIssuer: sessionTokenIssuer,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	claims, err := s.sessionTokenIssuer.Validate(input.Token)
	if err != nil {
		return result, user.ErrInvalidSessionToken
	}
	u, err := s.userRepository.GetByID(ctx, claims.UserID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, user.ErrInvalidSessionToken
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by session token claims.",
			logging.Entry("userID", claims.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}
	if !u.IsActive {
		return result, user.ErrUserIsNotActive
	}
	return Result{User: u}, nil
}
