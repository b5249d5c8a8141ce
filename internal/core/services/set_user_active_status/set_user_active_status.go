package setuseractivestatus

import (
	"context"
	"errors"
	"time"

	"accountms/internal/core/domain/activity"
	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/logging"
	"accountms/internal/core/domain/user"
	"accountms/internal/core/services"
	"accountms/internal/core/services/auth"
)

type Input struct {
	User         user.User
	TargetUserID user.ID
	IsActive     bool
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
	activityStream activity.Stream
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	activityStream activity.Stream,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if activityStream == nil {
		panic(e.NewNilArgumentError("activityStream"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		activityStream: activityStream,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if !input.User.IsAdmin() {
		return result, user.ErrPermissionDenied
	}
	// An admin must not lock themselves out.
	if input.User.ID == input.TargetUserID {
		return result, user.ErrPermissionDenied
	}

	updatedUser, err := s.userRepository.Update(ctx, user.UpdateUserInput{
		UserID:           input.TargetUserID,
		DoIsActiveUpdate: true,
		IsActive:         input.IsActive,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user active status.",
			logging.Entry("userID", input.TargetUserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.activityStream.Publish(ctx, activity.Event{
		Type:     activity.UserStatusChanged,
		UserID:   updatedUser.ID,
		Username: updatedUser.Username,
		At:       s.now(),
	})
	s.log.Info(
		ctx,
		"User active status has been changed.",
		logging.Entry("userID", updatedUser.ID),
		logging.Entry("isActive", updatedUser.IsActive),
	)
	return Result{User: updatedUser}, nil
}
