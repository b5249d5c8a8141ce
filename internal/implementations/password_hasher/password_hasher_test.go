package passwordhasher

import (
	"fmt"
	"testing"

	"accountms/internal/core/domain/user"
)

func TestPasswordValid(t *testing.T) {
	type testcase struct {
		ix       int
		secret   string
		cost     int
		password string
	}
	cases := []testcase{
		{ix: 1, secret: "test", cost: 5, password: "test"},
		{ix: 2, secret: "", cost: 5, password: ""},
		{ix: 3, secret: "a", cost: 7, password: "password password"},
		{ix: 4, secret: "   b   ", cost: 10, password: "   test   "},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			h := NewBcrypt(c.secret, c.cost)
			hash, err := h.HashPassword(user.RawPassword(c.password))
			if hash == user.PasswordHash("") {
				t.Fatal("hash must not be empty")
			}
			if err != nil {
				t.Fatalf("could not hash password: %v, %v", c.password, err)
			}
			if !h.ValidatePassword(user.RawPassword(c.password), hash) {
				t.Fatalf("password check failed: %v", c.password)
			}
		})
	}
}

func TestPasswordInvalid(t *testing.T) {
	type testcase struct {
		ix              int
		secretToHash    string
		secretToCheck   string
		cost            int
		passwordToHash  string
		passwordToCheck string
	}
	cases := []testcase{
		{
			ix:              1,
			secretToHash:    "test",
			secretToCheck:   "test",
			cost:            5,
			passwordToHash:  "test",
			passwordToCheck: "test ",
		},
		{
			ix:              2,
			secretToHash:    "test",
			secretToCheck:   "test ",
			cost:            5,
			passwordToHash:  "test",
			passwordToCheck: "test",
		},
		{
			ix:              3,
			secretToHash:    "a",
			secretToCheck:   "a",
			cost:            10,
			passwordToHash:  "password password",
			passwordToCheck: " password password",
		},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			h := NewBcrypt(c.secretToHash, c.cost)
			hash, err := h.HashPassword(user.RawPassword(c.passwordToHash))
			if err != nil {
				t.Fatalf("could not hash password: %v, %v", c.passwordToHash, err)
			}

			h = NewBcrypt(c.secretToCheck, c.cost)
			if h.ValidatePassword(user.RawPassword(c.passwordToCheck), hash) {
				t.Fatalf("password check passed: %v, %v", c.passwordToHash, c.passwordToCheck)
			}
		})
	}
}

func TestRepeatedHashesDiffer(t *testing.T) {
	h := NewBcrypt("test", 5)

	first, err := h.HashPassword(user.RawPassword("same-password"))
	if err != nil {
		t.Fatalf("could not hash password: %v", err)
	}
	second, err := h.HashPassword(user.RawPassword("same-password"))
	if err != nil {
		t.Fatalf("could not hash password: %v", err)
	}

	if first == second {
		t.Fatal("two hashes of the same password must differ")
	}
	if !h.ValidatePassword(user.RawPassword("same-password"), first) {
		t.Fatal("first hash must validate")
	}
	if !h.ValidatePassword(user.RawPassword("same-password"), second) {
		t.Fatal("second hash must validate")
	}
}

func TestMalformedHashDoesNotValidate(t *testing.T) {
	h := NewBcrypt("test", 5)

	if h.ValidatePassword(user.RawPassword("test"), user.PasswordHash("not-a-bcrypt-hash")) {
		t.Fatal("malformed hash must not validate")
	}
	if h.ValidatePassword(user.RawPassword("test"), user.PasswordHash("")) {
		t.Fatal("empty hash must not validate")
	}
}
