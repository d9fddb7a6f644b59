package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopCipher(t *testing.T) {
	c := NoopCipher{}

	sealed, err := c.Seal("hunter2")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", sealed)

	opened, err := c.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", opened)
}

func TestAESGCMCipher_RoundTrip(t *testing.T) {
	key := make([]byte, 32)
	c, err := NewAESGCMCipher(key)
	require.NoError(t, err)

	sealed, err := c.Seal("пароль-секрет")
	require.NoError(t, err)
	assert.NotEqual(t, "пароль-секрет", sealed)

	opened, err := c.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "пароль-секрет", opened)
}

func TestAESGCMCipher_SealIsRandomized(t *testing.T) {
	c, err := NewAESGCMCipher(make([]byte, 16))
	require.NoError(t, err)

	s1, err := c.Seal("same")
	require.NoError(t, err)
	s2, err := c.Seal("same")
	require.NoError(t, err)

	// Fresh nonce per seal, so the sealed form never repeats.
	assert.NotEqual(t, s1, s2)
}

func TestAESGCMCipher_TamperDetected(t *testing.T) {
	c, err := NewAESGCMCipher(make([]byte, 32))
	require.NoError(t, err)

	sealed, err := c.Seal("secret")
	require.NoError(t, err)

	// Flip one hex digit.
	tampered := []byte(sealed)
	if tampered[len(tampered)-1] == '0' {
		tampered[len(tampered)-1] = '1'
	} else {
		tampered[len(tampered)-1] = '0'
	}

	_, err = c.Open(string(tampered))
	assert.Error(t, err)
}

func TestAESGCMCipher_MalformedInput(t *testing.T) {
	c, err := NewAESGCMCipher(make([]byte, 32))
	require.NoError(t, err)

	_, err = c.Open("not-hex!")
	assert.Error(t, err)

	_, err = c.Open("abcd")
	assert.Error(t, err)
}

func TestNewAESGCMCipher_BadKeyLength(t *testing.T) {
	_, err := NewAESGCMCipher(make([]byte, 15))
	assert.Error(t, err)
}
