package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSalt(t *testing.T) {
	s1 := NewSalt()
	s2 := NewSalt()

	assert.Len(t, s1, SaltSize)
	assert.Len(t, s2, SaltSize)
	assert.NotEqual(t, s1, s2)
}

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt-16byt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != 32 {
		t.Errorf("expected 32-byte key, got %d", len(key1))
	}
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}

	key3 := DeriveKey([]byte("other-password"), []byte("salt-1"))
	if bytes.Equal(key1, key3) {
		t.Errorf("expected different results for different passwords, got same")
	}
}

func TestVerifyKey(t *testing.T) {
	password := []byte("pw1")
	salt := NewSalt()
	hash := DeriveKey(password, salt)

	assert.True(t, VerifyKey(hash, DeriveKey(password, salt)))
	assert.False(t, VerifyKey(hash, DeriveKey([]byte("pw2"), salt)))
}
