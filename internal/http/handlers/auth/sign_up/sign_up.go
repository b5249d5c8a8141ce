package signup

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	c "accountms/internal/core/domain/common"
	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/user"
	"accountms/internal/core/services"
	"accountms/internal/core/services/captcha"
	signup "accountms/internal/core/services/sign_up"
	"accountms/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[signup.Input, signup.Result]
}

func New(
	service services.Service[signup.Input, signup.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
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
		validation.Field(&i.Username, validation.Required, validation.Length(1, user.MaxUsernameLength)),
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, user.MaxEmailLength)),
		validation.Field(&i.Password, validation.Required, validation.Length(8, 256)),
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

	result, err := h.service.Run(
		r.Context(),
		signup.Input{
			Username:  input.Username,
			Email:     c.NewEmail(input.Email),
			Password:  user.RawPassword(input.Password),
			FirstName: optionalFromPtr(input.FirstName),
			LastName:  optionalFromPtr(input.LastName),
		},
	)
	if errors.Is(err, captcha.ErrInvalidCaptcha) {
		response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if errors.Is(err, user.ErrUsernameAlreadyExists) {
		response.RenderError(rw, "username already exists", http.StatusUnprocessableEntity)
		return
	}
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		response.RenderError(rw, "email already exists", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, Result{User: u}, http.StatusCreated)
}

func optionalFromPtr(s *string) c.Optional[string] {
	if s == nil {
		return c.Optional[string]{}
	}
	return c.NewOptional(*s, true)
}
