package me

import (
	"errors"
	"net/http"

	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/user"
	"accountms/internal/core/services"
	service "accountms/internal/core/services/get_user_by_session_token"
	"accountms/internal/http/handlers/auth"
	"accountms/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

type Result struct {
	User      response.User      `json:"user"`
	Dashboard response.Dashboard `json:"dashboard"`
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := auth.ParseToken(r)
	if !ok {
		response.RenderUnauthorized(rw)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{Token: token},
	)
	if errors.Is(err, user.ErrInvalidSessionToken) {
		response.RenderUnauthorized(rw)
		return
	}
	if errors.Is(err, user.ErrUserIsNotActive) {
		response.RenderError(rw, user.ErrUserIsNotActive.Error(), http.StatusUnauthorized)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	dashboard := response.Dashboard{}
	dashboard.FromDomainUser(result.User)
	response.Render(rw, Result{User: u, Dashboard: dashboard}, http.StatusOK)
}
