package app

import (
	"fmt"
	"net/http"

	"accountms/internal/app/deps"
	"accountms/internal/app/services"
	adminevents "accountms/internal/http/handlers/admin/events"
	listusers "accountms/internal/http/handlers/admin/list_users"
	setuserstatus "accountms/internal/http/handlers/admin/set_user_status"
	"accountms/internal/http/handlers/auth"
	login "accountms/internal/http/handlers/auth/log_in"
	resetpassword "accountms/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "accountms/internal/http/handlers/auth/send_password_reset_token"
	signup "accountms/internal/http/handlers/auth/sign_up"
	"accountms/internal/http/handlers/captcha"
	changepassword "accountms/internal/http/handlers/user/change_password"
	me "accountms/internal/http/handlers/user/me"
	updateuser "accountms/internal/http/handlers/user/update_user"
	activitystream "accountms/internal/implementations/activity"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/register", signup.New(s.SignUp))
	authRouter.Method(http.MethodPost, "/login", login.New(s.LogIn))
	authRouter.Method(http.MethodPost, "/password_reset/token", sendpasswordresettoken.New(s.SendPasswordResetToken))
	authRouter.Method(http.MethodPut, "/password_reset", resetpassword.New(s.ResetPassword))

	profileRouter := chi.NewRouter()
	profileRouter.Use(auth.SetAuthTokenToContext)
	profileRouter.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))
	profileRouter.Method(http.MethodPatch, "/me", updateuser.New(s.UpdateUser))
	profileRouter.Method(http.MethodPut, "/password", changepassword.New(s.ChangePassword))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.SetAuthTokenToContext)
	adminRouter.Method(http.MethodGet, "/users", listusers.New(s.ListUsers))
	adminRouter.Method(http.MethodPut, "/users/{userID:[0-9]+}/status", setuserstatus.New(s.SetUserActiveStatus))
	adminRouter.Method(
		http.MethodGet,
		"/events",
		adminevents.New(deps.Logger, deps.SseServer, s.GetUserBySessionToken, activitystream.STREAM_ID),
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Use(captcha.SetCaptchaTokenToContext)
	router.Mount("/auth", authRouter)
	router.Mount("/profile", profileRouter)
	router.Mount("/admin", adminRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
