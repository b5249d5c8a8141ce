package events

import (
	"context"
	"errors"
	"net/http"

	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/logging"
	"accountms/internal/core/domain/user"
	"accountms/internal/core/services"
	s "accountms/internal/core/services/get_user_by_session_token"
	"accountms/internal/http/handlers/auth"
	"accountms/internal/http/handlers/response"

	"github.com/r3labs/sse/v2"
)

// Handler streams account activity events to admin clients. EventSource
// cannot set headers, so the session token may come from the `token` query
// parameter as well.
type Handler struct {
	log       logging.Logger
	sseServer *sse.Server
	service   services.Service[s.Input, s.Result]
	streamID  string
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
	service services.Service[s.Input, s.Result],
	streamID string,
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if streamID == "" {
		panic("streamID must not be empty")
	}
	return &Handler{log: log, sseServer: sseServer, service: service, streamID: streamID}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := auth.ParseToken(r)
	if !ok {
		tokenFromQuery := r.URL.Query().Get("token")
		if tokenFromQuery == "" || len(tokenFromQuery) > auth.AUTH_TOKEN_MAX_LEN {
			response.RenderUnauthorized(rw)
			return
		}
		token = user.SessionToken(tokenFromQuery)
	}

	result, err := h.service.Run(r.Context(), s.Input{Token: token})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidSessionToken):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrUserIsNotActive):
			response.RenderError(rw, user.ErrUserIsNotActive.Error(), http.StatusUnauthorized)
		default:
			response.RenderInternalError(rw)
		}
		return
	}
	if !result.User.IsAdmin() {
		response.RenderForbidden(rw)
		return
	}

	query := r.URL.Query()
	query.Set("stream", h.streamID)
	r.URL.RawQuery = query.Encode()

	go func() {
		<-r.Context().Done()
		h.log.Info(
			context.Background(),
			"Unsubscribed from account activity events.",
			logging.Entry("userID", result.User.ID),
		)
	}()

	h.log.Info(
		r.Context(),
		"Subscribed to account activity events.",
		logging.Entry("userID", result.User.ID),
		logging.Entry("streamID", h.streamID),
	)
	h.sseServer.ServeHTTP(rw, r)
}
