package services

import (
	"accountms/internal/app/deps"
	"accountms/internal/core/services"
	"accountms/internal/core/services/auth"
	"accountms/internal/core/services/captcha"
	changepassword "accountms/internal/core/services/change_password"
	getuserbysessiontoken "accountms/internal/core/services/get_user_by_session_token"
	listusers "accountms/internal/core/services/list_users"
	login "accountms/internal/core/services/log_in"
	resetpassword "accountms/internal/core/services/reset_password"
	sendpasswordresettoken "accountms/internal/core/services/send_password_reset_token"
	setuseractivestatus "accountms/internal/core/services/set_user_active_status"
	signup "accountms/internal/core/services/sign_up"
	updateuser "accountms/internal/core/services/update_user"
)

type Services struct {
	SignUp                 services.Service[signup.Input, signup.Result]
	LogIn                  services.Service[login.Input, login.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
	GetUserBySessionToken  services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	UpdateUser             services.Service[updateuser.Input, updateuser.Result]
	ChangePassword         services.Service[changepassword.Input, changepassword.Result]
	ListUsers              services.Service[listusers.Input, listusers.Result]
	SetUserActiveStatus    services.Service[setuseractivestatus.Input, setuseractivestatus.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUp = captcha.WithCaptcha(
		deps.CaptchaValidator,
		signup.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.PasswordHasher,
			deps.ActivityStream,
			deps.Now,
		),
	)
	s.LogIn = login.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.SessionTokenIssuer,
		deps.ActivityStream,
		deps.Now,
	)
	s.SendPasswordResetToken = captcha.WithCaptcha(
		deps.CaptchaValidator,
		sendpasswordresettoken.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordResetTokenGenerator,
			deps.PasswordResetTokenSender,
			deps.Now,
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.Now,
	)
	s.GetUserBySessionToken = getuserbysessiontoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.SessionTokenIssuer,
	)
	s.UpdateUser = auth.WithAuthentication(
		deps.SessionTokenIssuer,
		deps.UserRepository,
		updateuser.New(
			deps.Logger,
			deps.UserRepository,
		),
	)
	s.ChangePassword = auth.WithAuthentication(
		deps.SessionTokenIssuer,
		deps.UserRepository,
		changepassword.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
		),
	)
	s.ListUsers = auth.WithAuthentication(
		deps.SessionTokenIssuer,
		deps.UserRepository,
		listusers.New(
			deps.Logger,
			deps.UserRepository,
		),
	)
	s.SetUserActiveStatus = auth.WithAuthentication(
		deps.SessionTokenIssuer,
		deps.UserRepository,
		setuseractivestatus.New(
			deps.Logger,
			deps.UserRepository,
			deps.ActivityStream,
			deps.Now,
		),
	)

	return s
}
