package user

import (
	"testing"
	"time"

	c "accountms/internal/core/domain/common"

	"github.com/stretchr/testify/require"
)

func TestUserValidate(t *testing.T) {
	cases := []struct {
		id      string
		user    User
		isValid bool
	}{
		{
			id: "1",
			user: User{
				ID:           1,
				Username:     "test",
				Email:        "test@test.com",
				PasswordHash: "hash",
				Role:         RoleUser,
			},
			isValid: true,
		},
		{
			id: "2",
			user: User{
				ID:           2,
				Username:     "admin",
				Email:        "admin@test.com",
				PasswordHash: "hash",
				Role:         RoleAdmin,
			},
			isValid: true,
		},
		{
			id:      "3",
			user:    User{ID: 3, Email: "test@test.com", PasswordHash: "hash", Role: RoleUser},
			isValid: false,
		},
		{
			id:      "4",
			user:    User{ID: 4, Username: "test", PasswordHash: "hash", Role: RoleUser},
			isValid: false,
		},
		{
			id:      "5",
			user:    User{ID: 5, Username: "test", Email: "test@test.com", Role: RoleUser},
			isValid: false,
		},
		{
			id: "6",
			user: User{
				ID:           6,
				Username:     "test",
				Email:        "test@test.com",
				PasswordHash: "hash",
				Role:         Role("Superuser"),
			},
			isValid: false,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			err := testcase.user.Validate()
			if testcase.isValid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestHasValidResetToken(t *testing.T) {
	now := time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		id       string
		token    c.Optional[PasswordResetToken]
		expiry   c.Optional[time.Time]
		isUsed   bool
		expected bool
	}{
		{
			id:       "no token",
			expected: false,
		},
		{
			id:       "valid token",
			token:    c.NewOptional(PasswordResetToken("token"), true),
			expiry:   c.NewOptional(now.Add(time.Hour), true),
			expected: true,
		},
		{
			id:       "used token",
			token:    c.NewOptional(PasswordResetToken("token"), true),
			expiry:   c.NewOptional(now.Add(time.Hour), true),
			isUsed:   true,
			expected: false,
		},
		{
			id:       "expired token",
			token:    c.NewOptional(PasswordResetToken("token"), true),
			expiry:   c.NewOptional(now.Add(-time.Second), true),
			expected: false,
		},
		{
			id:       "expires exactly now",
			token:    c.NewOptional(PasswordResetToken("token"), true),
			expiry:   c.NewOptional(now, true),
			expected: true,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			u := User{
				ResetToken:       testcase.token,
				ResetTokenExpiry: testcase.expiry,
				ResetTokenIsUsed: testcase.isUsed,
			}
			require.Equal(t, testcase.expected, u.HasValidResetToken(now))
		})
	}
}

func TestSecretsAreMasked(t *testing.T) {
	assert := require.New(t)

	assert.Equal("***", PasswordHash("bcrypt-hash").String())
	assert.Equal("***", RawPassword("plaintext").String())
	assert.Equal("***", PasswordResetToken("token").String())
}
