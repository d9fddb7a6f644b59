// Package expiry computes rotation status from entry timestamps. It holds no
// state and persists nothing; the vault service calls it for listings and
// reminder alerts.
package expiry

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/credvault/internal/models"
)

// Status of an entry's secret relative to its rotation policy.
type Status int

const (
	// StatusFresh means the secret is inside its rotation interval and not
	// yet inside the reminder window.
	StatusFresh Status = iota
	// StatusReminder means the secret will reach its rotation deadline
	// within the entry's reminder lead time.
	StatusReminder
	// StatusOverdue means the rotation interval has fully elapsed.
	StatusOverdue
)

func (s Status) String() string {
	switch s {
	case StatusReminder:
		return "reminder"
	case StatusOverdue:
		return "overdue"
	default:
		return "fresh"
	}
}

const day = 24 * time.Hour

// Check returns the rotation status of an entry at the given instant.
// Both band edges are inclusive on their lower side: an entry becomes
// StatusReminder exactly (interval-lead) days after rotation and
// StatusOverdue exactly interval days after.
func Check(e models.CredentialEntry, now time.Time) Status {
	interval := time.Duration(e.RotationIntervalDays) * day
	lead := time.Duration(e.ReminderLeadDays) * day
	elapsed := now.Sub(e.LastRotated)

	switch {
	case elapsed >= interval:
		return StatusOverdue
	case elapsed >= interval-lead:
		return StatusReminder
	default:
		return StatusFresh
	}
}

// DaysRemaining returns the number of whole days until the entry's rotation
// deadline. Negative values mean the deadline has passed.
func DaysRemaining(e models.CredentialEntry, now time.Time) int {
	elapsedDays := int(now.Sub(e.LastRotated) / day)
	return e.RotationIntervalDays - elapsedDays
}

// Reminder pairs an entry that needs attention with the days it has left.
type Reminder struct {
	Entry         models.CredentialEntry
	DaysRemaining int
}

// DueForReminder filters entries whose status is reminder or overdue and
// returns them most urgent first (ascending days remaining; overdue entries
// carry negative values). The sort is stable so entries with equal urgency
// keep their input order.
func DueForReminder(entries []models.CredentialEntry, now time.Time) []Reminder {
	var due []Reminder
	for _, e := range entries {
		if Check(e, now) == StatusFresh {
			continue
		}
		due = append(due, Reminder{Entry: e, DaysRemaining: DaysRemaining(e, now)})
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DaysRemaining < due[j].DaysRemaining
	})

	return due
}
