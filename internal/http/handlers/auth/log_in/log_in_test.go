package login

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	c "accountms/internal/core/domain/common"
	"accountms/internal/core/domain/user"
	service "accountms/internal/core/services/log_in"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.Token = user.SessionToken("test-session-token")
	result.User = user.User{
		ID:           user.ID(1),
		Username:     "test-user",
		Email:        c.Email("test@test.test"),
		PasswordHash: user.PasswordHash("test-hash"),
		Role:         user.RoleUser,
		CreatedAt:    time.Date(2023, 1, 1, 1, 1, 1, 0, time.UTC),
		IsActive:     true,
	}
	return result, nil
}

func TestLogInHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{
			id:             "success",
			body:           `{"username": "test-user", "password": "test-password"}`,
			expectedStatus: http.StatusOK,
		},
		{
			id:             "invalid json",
			body:           `{"username": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing password",
			body:           `{"username": "test-user"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid credentials",
			body:           `{"username": "test-user", "password": "wrong"}`,
			serviceErr:     user.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			id:             "deactivated account",
			body:           `{"username": "test-user", "password": "test-password"}`,
			serviceErr:     user.ErrUserIsNotActive,
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			handler := New(stub)

			request := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(testcase.body))
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
		})
	}
}

func TestLogInHandlerResponseBody(t *testing.T) {
	stub := &stubService{}
	handler := New(stub)

	request := httptest.NewRequest(
		http.MethodPost,
		"/auth/login",
		strings.NewReader(`{"username": "test-user", "password": "test-password"}`),
	)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, `"token":"test-session-token"`)
	assert.Contains(t, body, `"username":"test-user"`)
	assert.NotContains(t, body, "test-hash")
	require.NotNil(t, stub.input)
	assert.Equal(t, "test-user", stub.input.Username)
	assert.Equal(t, user.RawPassword("test-password"), stub.input.Password)
}
