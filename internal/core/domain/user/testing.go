package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
	"time"

	c "accountms/internal/core/domain/common"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakePasswordResetTokenGenerator struct {
	Token PasswordResetToken
}

func NewFakePasswordResetTokenGenerator(token string) *FakePasswordResetTokenGenerator {
	return &FakePasswordResetTokenGenerator{Token: PasswordResetToken(token)}
}

func (g *FakePasswordResetTokenGenerator) GenerateResetToken() PasswordResetToken {
	return g.Token
}

type FakePasswordResetTokenSender struct {
	SentTo      []User
	SentTokens  []PasswordResetToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendResetToken(
	ctx context.Context,
	u User,
	token PasswordResetToken,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send reset token for user %d", u.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.SentTo = append(s.SentTo, u)
	s.SentTokens = append(s.SentTokens, token)
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.SentTo)
}

type FakeSessionTokenIssuer struct {
	IssueError    bool
	ValidateError bool
	claims        map[SessionToken]SessionClaims
	lock          sync.Mutex
}

func NewFakeSessionTokenIssuer() *FakeSessionTokenIssuer {
	return &FakeSessionTokenIssuer{claims: make(map[SessionToken]SessionClaims)}
}

func (i *FakeSessionTokenIssuer) Issue(u User) (SessionToken, error) {
	if i.IssueError {
		return "", fmt.Errorf("could not issue session token for user %d", u.ID)
	}
	i.lock.Lock()
	defer i.lock.Unlock()
	token := SessionToken(fmt.Sprintf("session-token-%d-%d", u.ID, len(i.claims)))
	i.claims[token] = SessionClaims{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
	return token, nil
}

func (i *FakeSessionTokenIssuer) Validate(token SessionToken) (SessionClaims, error) {
	if i.ValidateError {
		return SessionClaims{}, ErrInvalidSessionToken
	}
	i.lock.Lock()
	defer i.lock.Unlock()
	claims, ok := i.claims[token]
	if !ok {
		return SessionClaims{}, ErrInvalidSessionToken
	}
	return claims, nil
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, existing := range r.Users {
		if existing.Username == input.Username {
			return u, ErrUsernameAlreadyExists
		}
		if existing.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	u = User{
		ID:           maxID + 1,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		CreatedAt:    input.CreatedAt,
		IsActive:     input.IsActive,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by id %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Users {
		if existing.ID == id {
			return existing, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByUsername(ctx context.Context, username string) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by username %s", username)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Users {
		if existing.Username == username {
			return existing, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by email %s", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Users {
		if existing.Email == email {
			return existing, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByResetToken(
	ctx context.Context,
	token PasswordResetToken,
) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Users {
		if existing.ResetToken.IsPresent && existing.ResetToken.Value == token {
			return existing, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) List(ctx context.Context) ([]User, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list users")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	users := make([]User, len(r.Users))
	copy(users, r.Users)
	return users, nil
}

func (r *FakeUserRepository) Update(ctx context.Context, input UpdateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not update user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Users {
		if r.Users[ix].ID != input.UserID {
			continue
		}
		if input.DoFirstNameUpdate {
			r.Users[ix].FirstName = input.FirstName
		}
		if input.DoLastNameUpdate {
			r.Users[ix].LastName = input.LastName
		}
		if input.DoIsActiveUpdate {
			r.Users[ix].IsActive = input.IsActive
		}
		return r.Users[ix], nil
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password for user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Users {
		if r.Users[ix].ID == id {
			r.Users[ix].PasswordHash = password
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) RecordLogIn(ctx context.Context, id ID, at time.Time) error {
	if r.ReturnError {
		return fmt.Errorf("could not record login for user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Users {
		if r.Users[ix].ID == id {
			r.Users[ix].LastLoginAt = c.NewOptional(at, true)
			r.Users[ix].TotalLogins++
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPasswordResetToken(
	ctx context.Context,
	input SetPasswordResetTokenInput,
) error {
	if r.ReturnError {
		return fmt.Errorf("could not set reset token for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Users {
		if r.Users[ix].ID == input.UserID {
			r.Users[ix].ResetToken = c.NewOptional(input.Token, true)
			r.Users[ix].ResetTokenExpiry = c.NewOptional(input.ExpiresAt, true)
			r.Users[ix].ResetTokenIsUsed = false
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) ConsumePasswordResetToken(
	ctx context.Context,
	input ConsumePasswordResetTokenInput,
) error {
	if r.ReturnError {
		return fmt.Errorf("could not consume reset token for user %d", input.UserID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Users {
		if r.Users[ix].ID != input.UserID {
			continue
		}
		// Same compare-and-swap the SQL repository performs: only an unused
		// token transitions, a concurrent loser observes the used flag.
		if !r.Users[ix].ResetToken.IsPresent || r.Users[ix].ResetTokenIsUsed {
			return ErrResetTokenAlreadyUsed
		}
		r.Users[ix].PasswordHash = input.NewPasswordHash
		r.Users[ix].ResetTokenIsUsed = true
		r.Users[ix].ResetToken = c.NewOptional(PasswordResetToken(""), false)
		r.Users[ix].ResetTokenExpiry = c.NewOptional(time.Time{}, false)
		return nil
	}
	return ErrUserDoesNotExist
}
