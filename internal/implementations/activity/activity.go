package activity

import (
	"context"
	"encoding/json"
	"time"

	"accountms/internal/core/domain/activity"
	e "accountms/internal/core/domain/errors"
	"accountms/internal/core/domain/logging"

	"github.com/r3labs/sse/v2"
)

const STREAM_ID = "account-activity"

type eventJSON struct {
	Type     string    `json:"type"`
	UserID   int64     `json:"user_id"`
	Username string    `json:"username"`
	At       time.Time `json:"at"`
}

// SSEStream pushes account activity events to the admin live feed.
// Publishing is best effort, a marshalling failure is only logged.
type SSEStream struct {
	log    logging.Logger
	server *sse.Server
}

func NewSSEStream(log logging.Logger, server *sse.Server) *SSEStream {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if server == nil {
		panic(e.NewNilArgumentError("server"))
	}
	return &SSEStream{log: log, server: server}
}

func (s *SSEStream) Publish(ctx context.Context, event activity.Event) {
	data, err := json.Marshal(eventJSON{
		Type:     string(event.Type),
		UserID:   int64(event.UserID),
		Username: event.Username,
		At:       event.At,
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return
	}
	s.server.Publish(STREAM_ID, &sse.Event{Data: data})
}
