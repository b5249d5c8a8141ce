package sendpasswordresettoken

import (
	"context"
	"errors"
	"time"

	c "accountms/internal/core/domain/common"
	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/logging"
	"accountms/internal/core/domain/user"
	"accountms/internal/core/services"
)

const RESET_TOKEN_VALID_DURATION = time.Hour

type Input struct {
	Email c.Email
}

// Result is empty on purpose: the caller renders the same acknowledgment
// whether the account exists or not, so nothing about the lookup outcome may
// leak out of this service.
type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenGenerator user.PasswordResetTokenGenerator
	tokenSender    user.PasswordResetTokenSender
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenGenerator user.PasswordResetTokenGenerator,
	tokenSender user.PasswordResetTokenSender,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if tokenSender == nil {
		panic(e.NewNilArgumentError("tokenSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenGenerator: tokenGenerator,
		tokenSender:    tokenSender,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Generate a token anyway so the unknown-email path costs the same.
		s.tokenGenerator.GenerateResetToken()
		s.log.Info(ctx, "Password reset requested for unknown email.")
		return result, nil
	}
	if err != nil {
		s.log.Error(ctx, "Could not get user by email.", logging.Entry("err", err))
		return result, err
	}

	// A fresh token always supersedes any outstanding one and clears the
	// used flag.
	token := s.tokenGenerator.GenerateResetToken()
	err = s.userRepository.SetPasswordResetToken(ctx, user.SetPasswordResetTokenInput{
		UserID:    u.ID,
		Token:     token,
		ExpiresAt: s.now().Add(RESET_TOKEN_VALID_DURATION),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not store password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// Delivery failures do not invalidate the stored token and are not
	// reported to the caller, the acknowledgment stays the same.
	if err := s.tokenSender.SendResetToken(ctx, u, token); err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
	} else {
		s.log.Info(ctx, "Password reset token sent.", logging.Entry("userID", u.ID))
	}
	return result, nil
}
