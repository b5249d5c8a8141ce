package resettokengenerator

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"accountms/internal/core/domain/user"
)

const tokenLength = 32

// Generator produces opaque URL-safe reset tokens from 256 bits of
// cryptographically secure randomness. Uniqueness is not checked against
// storage, the birthday bound over the 256-bit space makes collisions
// negligible.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) GenerateResetToken() user.PasswordResetToken {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		panic(fmt.Sprintf("could not read random bytes: %v", err))
	}
	token := base64.RawURLEncoding.EncodeToString(randomBytes)[:tokenLength]
	return user.PasswordResetToken(token)
}
