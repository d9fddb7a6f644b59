package session

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-secret")

func TestIssueAndParse(t *testing.T) {
	token, err := IssueToken("alice", testKey, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	owner, err := OwnerFromToken(token, testKey)
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)
}

func TestOwnerFromToken_WrongKey(t *testing.T) {
	token, err := IssueToken("alice", testKey, time.Hour)
	require.NoError(t, err)

	_, err = OwnerFromToken(token, []byte("other-secret"))
	assert.ErrorIs(t, err, common.ErrorInvalidToken)
}

func TestOwnerFromToken_Expired(t *testing.T) {
	token, err := IssueToken("alice", testKey, -time.Minute)
	require.NoError(t, err)

	_, err = OwnerFromToken(token, testKey)
	assert.ErrorIs(t, err, common.ErrorInvalidToken)
}

func TestOwnerFromToken_Garbage(t *testing.T) {
	_, err := OwnerFromToken("not-a-token", testKey)
	assert.ErrorIs(t, err, common.ErrorInvalidToken)
}
