// Package session issues and verifies the signed tokens that bind vault
// operations to an authenticated owner.
package session

import (
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the owning username.
type Claims struct {
	jwt.RegisteredClaims
	Username string
}

// IssueToken signs a session token for username, valid for validityDuration.
func IssueToken(username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// OwnerFromToken verifies a session token and returns the username it is
// bound to. Expired, malformed, or mis-signed tokens all fail with
// common.ErrorInvalidToken.
func OwnerFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", common.ErrorInvalidToken
	}

	if !token.Valid || claims.Username == "" {
		return "", common.ErrorInvalidToken
	}

	return claims.Username, nil
}
