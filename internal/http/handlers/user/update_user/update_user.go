package updateuser

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	c "accountms/internal/core/domain/common"
	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/user"
	"accountms/internal/core/services"
	service "accountms/internal/core/services/update_user"
	"accountms/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
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
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type Result struct {
	User response.User `json:"user"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.FirstName, validation.Length(0, 100)),
		validation.Field(&i.LastName, validation.Length(0, 100)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	serviceInput := service.Input{}
	if input.FirstName != nil {
		serviceInput.DoFirstNameUpdate = true
		serviceInput.FirstName = c.NewOptional(*input.FirstName, *input.FirstName != "")
	}
	if input.LastName != nil {
		serviceInput.DoLastNameUpdate = true
		serviceInput.LastName = c.NewOptional(*input.LastName, *input.LastName != "")
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidSessionToken):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrUserIsNotActive):
			response.RenderError(rw, user.ErrUserIsNotActive.Error(), http.StatusUnauthorized)
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, Result{User: u}, http.StatusOK)
}
