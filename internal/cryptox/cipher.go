package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// Cipher transforms entry secrets at the persistence boundary. The snapshot
// layer seals secrets on save and opens them on load; the concrete algorithm
// and key management stay outside the core contract.
type Cipher interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

// NoopCipher stores secrets as-is. Used when no vault key is configured.
type NoopCipher struct{}

func (NoopCipher) Seal(plaintext string) (string, error) { return plaintext, nil }
func (NoopCipher) Open(sealed string) (string, error)    { return sealed, nil }

// AESGCMCipher seals secrets with AES-GCM. The sealed form is
// hex(nonce || ciphertext) so it stays a plain string in the snapshot.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCMCipher builds a cipher from a raw AES key
// (16, 24, or 32 bytes for AES-128/192/256).
func NewAESGCMCipher(key []byte) (*AESGCMCipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &AESGCMCipher{aead: aead}, nil
}

func (c *AESGCMCipher) Seal(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(sealed), nil
}

func (c *AESGCMCipher) Open(sealed string) (string, error) {
	raw, err := hex.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("malformed sealed secret: %w", err)
	}
	ns := c.aead.NonceSize()
	if len(raw) < ns {
		return "", errors.New("malformed sealed secret: too short")
	}
	plaintext, err := c.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
