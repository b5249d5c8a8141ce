package captcha

import (
	"context"
	"errors"
)

var ErrInvalidCaptcha = errors.New("invalid captcha token")

type CaptchaToken string

func (t CaptchaToken) IsZero() bool {
	return string(t) == ""
}

type CaptchaValidator interface {
	ValidateCaptchaToken(ctx context.Context, token CaptchaToken) bool
}
