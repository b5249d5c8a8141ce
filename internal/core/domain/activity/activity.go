package activity

import (
	"context"
	"sync"
	"time"

	"accountms/internal/core/domain/user"
)

type EventType string

const (
	UserSignedUp      EventType = "user_signed_up"
	UserLoggedIn      EventType = "user_logged_in"
	UserStatusChanged EventType = "user_status_changed"
)

// Event is an account activity record pushed to the admin live feed.
type Event struct {
	Type     EventType
	UserID   user.ID
	Username string
	At       time.Time
}

// Stream delivers events best effort; publishing must never fail a service
// operation.
type Stream interface {
	Publish(ctx context.Context, event Event)
}

type FakeStream struct {
	Published []Event
	lock      sync.Mutex
}

func NewFakeStream() *FakeStream {
	return &FakeStream{}
}

func (s *FakeStream) Publish(ctx context.Context, event Event) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Published = append(s.Published, event)
}

func (s *FakeStream) PublishedCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Published)
}
