package updateuser

import (
	"context"
	"errors"

	c "accountms/internal/core/domain/common"
	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/logging"
	"accountms/internal/core/domain/user"
	"accountms/internal/core/services"
	"accountms/internal/core/services/auth"
)

type Input struct {
	User              user.User
	DoFirstNameUpdate bool
	FirstName         c.Optional[string]
	DoLastNameUpdate  bool
	LastName          c.Optional[string]
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	User user.User
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
	if !input.DoFirstNameUpdate && !input.DoLastNameUpdate {
		return Result{User: input.User}, nil
	}
	updatedUser, err := s.userRepository.Update(ctx, user.UpdateUserInput{
		UserID:            input.User.ID,
		DoFirstNameUpdate: input.DoFirstNameUpdate,
		FirstName:         input.FirstName,
		DoLastNameUpdate:  input.DoLastNameUpdate,
		LastName:          input.LastName,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user.",
			logging.Entry("userID", input.User.ID),
			logging.Entry("err", err),
		)
		return result, err
	}
	s.log.Info(ctx, "User has been updated.", logging.Entry("userID", updatedUser.ID))
	return Result{User: updatedUser}, nil
}
