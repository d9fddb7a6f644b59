package models

import "time"

// Rotation policy defaults applied when an entry does not specify its own.
const (
	DefaultRotationIntervalDays = 30
	DefaultReminderLeadDays     = 7
)

// CredentialEntry is one stored third-party service credential, owned by a
// single user. LastRotated is set at creation and on every secret change.
type CredentialEntry struct {
	ID                   string
	Owner                string
	ServiceName          string
	OfficeID             string
	UserID               string
	Secret               string
	SiteURL              string
	LastRotated          time.Time
	RotationIntervalDays int
	ReminderLeadDays     int
}
