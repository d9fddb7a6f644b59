// Package storage owns the vault's working copy and its durable snapshot.
// All mutations go through Store, which serializes them under a single
// writer lock and flushes the snapshot before reporting success.
package storage

import "github.com/dmitrijs2005/credvault/internal/models"

// State is the full in-memory aggregate: the user table, the entry table,
// and the entry insertion order (listings are creation-ordered).
type State struct {
	Users      map[string]models.User
	Entries    map[string]models.CredentialEntry
	EntryOrder []string
}

// NewState returns an empty state, the bootstrap case for a missing snapshot.
func NewState() *State {
	return &State{
		Users:   make(map[string]models.User),
		Entries: make(map[string]models.CredentialEntry),
	}
}
