package listusers

import (
	"errors"
	"net/http"

	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/user"
	"accountms/internal/core/services"
	service "accountms/internal/core/services/list_users"
	"accountms/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

type Result struct {
	Users []response.User `json:"users"`
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
	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidSessionToken):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrUserIsNotActive):
			response.RenderError(rw, user.ErrUserIsNotActive.Error(), http.StatusUnauthorized)
		case errors.Is(err, user.ErrPermissionDenied):
			response.RenderForbidden(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	users := make([]response.User, 0, len(result.Users))
	for _, du := range result.Users {
		u := response.User{}
		u.FromDomainUser(du)
		users = append(users, u)
	}
	response.Render(rw, Result{Users: users}, http.StatusOK)
}
