package resetpassword

import (
	"context"
	"errors"
	"time"

	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/logging"
	"accountms/internal/core/domain/user"
	"accountms/internal/core/services"
)

type Input struct {
	Token       user.PasswordResetToken
	NewPassword user.RawPassword
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
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
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByResetToken(ctx, input.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, user.ErrInvalidResetToken
	}
	if err != nil {
		s.log.Error(ctx, "Could not get user by reset token.", logging.Entry("err", err))
		return result, err
	}

	// An expired token stays in storage but can never authorize a change.
	if !u.ResetTokenExpiry.IsPresent || s.now().After(u.ResetTokenExpiry.Value) {
		return result, user.ErrResetTokenExpired
	}
	if u.ResetTokenIsUsed {
		return result, user.ErrResetTokenAlreadyUsed
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash new password.", logging.Entry("err", err))
		return result, err
	}

	// The conditional update below is the serialization point: of two
	// concurrent consumers of the same token only one transitions the used
	// flag, the other observes it set.
	err = s.userRepository.ConsumePasswordResetToken(ctx, user.ConsumePasswordResetTokenInput{
		UserID:          u.ID,
		NewPasswordHash: newPasswordHash,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrResetTokenAlreadyUsed) {
		s.log.Info(
			ctx,
			"Reset token was consumed concurrently.",
			logging.Entry("userID", u.ID),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not consume password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("userID", u.ID),
	)
	return result, nil
}
