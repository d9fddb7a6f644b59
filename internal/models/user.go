package models

import "time"

// User is an operator account. PasswordHash and Salt hold the derived
// credential material; the raw password is never stored.
type User struct {
	Username     string
	PasswordHash []byte
	Salt         []byte
	Email        string
	CreatedAt    time.Time
}
