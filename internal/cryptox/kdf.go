// Package cryptox provides the password key derivation and the pluggable
// at-rest cipher for entry secrets.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/credvault/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the number of random bytes in a freshly generated salt.
const SaltSize = 16

// NewSalt returns a fresh random salt for password hashing.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// DeriveKey stretches a password with the given salt using Argon2id.
// The same parameters must be used for hashing and verification.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// VerifyKey compares a stored hash against a candidate in constant time.
func VerifyKey(hash, candidate []byte) bool {
	return subtle.ConstantTimeCompare(hash, candidate) == 1
}
