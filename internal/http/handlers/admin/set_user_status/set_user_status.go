package setuserstatus

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/user"
	"accountms/internal/core/services"
	service "accountms/internal/core/services/set_user_active_status"
	"accountms/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	IsActive *bool `json:"is_active"`
}

type Result struct {
	User response.User `json:"user"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawUserID := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid user ID", http.StatusBadRequest)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if input.IsActive == nil {
		response.RenderError(rw, "is_active is required", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			TargetUserID: user.ID(userID),
			IsActive:     *input.IsActive,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidSessionToken):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrUserIsNotActive):
			response.RenderError(rw, user.ErrUserIsNotActive.Error(), http.StatusUnauthorized)
		case errors.Is(err, user.ErrPermissionDenied):
			response.RenderForbidden(rw)
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderError(rw, "user does not exist", http.StatusNotFound)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, Result{User: u}, http.StatusOK)
}
