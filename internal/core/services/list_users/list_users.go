package listusers

import (
	"context"
	"errors"

	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/logging"
	"accountms/internal/core/domain/user"
	"accountms/internal/core/services"
	"accountms/internal/core/services/auth"
)

type Input struct {
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Users []user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{log: log, userRepository: userRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if !input.User.IsAdmin() {
		return result, user.ErrPermissionDenied
	}
	users, err := s.userRepository.List(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not list users.", logging.Entry("err", err))
		return result, err
	}
	return Result{Users: users}, nil
}
