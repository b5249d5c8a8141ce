package login

import (
	"context"
	"errors"
	"time"

	"accountms/internal/core/domain/activity"
	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/logging"
	"accountms/internal/core/domain/user"
	"accountms/internal/core/services"
)

type Input struct {
	Username string
	Password user.RawPassword
}

type Result struct {
	Token user.SessionToken
	User  user.User
}

type service struct {
	log                logging.Logger
	userRepository     user.UserRepository
	passwordHasher     user.PasswordHasher
	sessionTokenIssuer user.SessionTokenIssuer
	activityStream     activity.Stream
	now                func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	sessionTokenIssuer user.SessionTokenIssuer,
	activityStream activity.Stream,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if sessionTokenIssuer == nil {
		panic(e.NewNilArgumentError("sessionTokenIssuer"))
	}
	if activityStream == nil {
		panic(e.NewNilArgumentError("activityStream"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		userRepository:     userRepository,
		passwordHasher:     passwordHasher,
		sessionTokenIssuer: sessionTokenIssuer,
		activityStream:     activityStream,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByUsername(ctx, input.Username)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Minimize risk for timing attacks
		s.passwordHasher.HashPassword(input.Password)
		return result, user.ErrInvalidCredentials
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by username.",
			logging.Entry("username", input.Username),
			logging.Entry("err", err),
		)
		return result, err
	}
	// Deactivation is reported before the password is checked, so a
	// deactivated account never looks like a wrong password.
	if !u.IsActive {
		return result, user.ErrUserIsNotActive
	}
	if !s.passwordHasher.ValidatePassword(input.Password, u.PasswordHash) {
		return result, user.ErrInvalidCredentials
	}

	loggedInAt := s.now()
	err = s.userRepository.RecordLogIn(ctx, u.ID, loggedInAt)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not record user login.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	token, err := s.sessionTokenIssuer.Issue(u)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue session token for user.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.activityStream.Publish(ctx, activity.Event{
		Type:     activity.UserLoggedIn,
		UserID:   u.ID,
		Username: u.Username,
		At:       loggedInAt,
	})
	s.log.Info(
		ctx,
		"User successfully authenticated, session token issued.",
		logging.Entry("userID", u.ID),
	)
	return Result{Token: token, User: u}, nil
}
