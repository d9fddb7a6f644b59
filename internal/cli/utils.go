package cli

import (
	"crypto/rand"
	"math/big"
	"time"
)

// timeNow is a test seam for the clock used in status display.
var timeNow = time.Now

const secretLength = 12

const secretAlphabet = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!#$%&*+-=?@_"

// generateSecret returns a random password for the "leave blank to
// generate" flow.
func generateSecret() string {
	b := make([]byte, secretLength)
	alphabetLen := big.NewInt(int64(len(secretAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			panic(err)
		}
		b[i] = secretAlphabet[n.Int64()]
	}
	return string(b)
}
