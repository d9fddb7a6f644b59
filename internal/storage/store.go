package storage

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/models"
)

// Store is the single-writer working copy of the vault state. Every
// mutating call runs lock → mutate → persist → unlock, so concurrent
// mutations are serialized and a caller observing success is guaranteed
// the snapshot on disk reflects its change.
//
// When persisting fails the in-memory mutation is kept and the caller gets
// common.ErrorPersistence: the change exists but is not durably committed,
// and the caller decides whether to retry.
type Store struct {
	mu    sync.RWMutex
	state *State
	snap  *Snapshot
	log   logging.Logger
}

// NewStore loads the snapshot (or bootstraps an empty state) and wraps it.
func NewStore(snap *Snapshot, log logging.Logger) (*Store, error) {
	state, err := snap.Load()
	if err != nil {
		return nil, err
	}
	return &Store{state: state, snap: snap, log: log}, nil
}

// persist must be called with the write lock held.
func (s *Store) persist(ctx context.Context) error {
	if err := s.snap.Save(s.state); err != nil {
		s.log.Error(ctx, "snapshot save failed", "path", s.snap.Path(), "error", err)
		return err
	}
	return nil
}

// CreateUser adds a user, enforcing username uniqueness. A duplicate leaves
// the existing record untouched.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Users[u.Username]; ok {
		return common.ErrorAlreadyExists
	}

	s.state.Users[u.Username] = *u
	return s.persist(ctx)
}

// GetUserByName returns a copy of the named user.
func (s *Store) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.state.Users[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

// UpdateUser applies fn to the named user under the write lock and persists
// the result. If fn returns an error the record is left unchanged.
func (s *Store) UpdateUser(ctx context.Context, name string, fn func(*models.User) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.state.Users[name]
	if !ok {
		return common.ErrorNotFound
	}
	if err := fn(&u); err != nil {
		return err
	}

	s.state.Users[name] = u
	return s.persist(ctx)
}

// CreateEntry adds an entry, enforcing id uniqueness, per-owner service-name
// uniqueness, and a non-dangling owner reference.
func (s *Store) CreateEntry(ctx context.Context, e *models.CredentialEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Users[e.Owner]; !ok {
		return common.ErrorUserNotFound
	}
	if _, ok := s.state.Entries[e.ID]; ok {
		return common.ErrorAlreadyExists
	}
	if s.ownerHasService(e.Owner, e.ServiceName, e.ID) {
		return common.ErrorAlreadyExists
	}

	s.state.Entries[e.ID] = *e
	s.state.EntryOrder = append(s.state.EntryOrder, e.ID)
	return s.persist(ctx)
}

// GetEntry returns a copy of the entry with the given id.
func (s *Store) GetEntry(ctx context.Context, id string) (*models.CredentialEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.state.Entries[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &e, nil
}

// UpdateEntry applies fn to the entry under the write lock, re-checks the
// per-owner service-name uniqueness (fn may rename), and persists. If fn
// returns an error the record is left unchanged.
func (s *Store) UpdateEntry(ctx context.Context, id string, fn func(*models.CredentialEntry) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.state.Entries[id]
	if !ok {
		return common.ErrorNotFound
	}
	if err := fn(&e); err != nil {
		return err
	}
	if s.ownerHasService(e.Owner, e.ServiceName, e.ID) {
		return common.ErrorAlreadyExists
	}

	s.state.Entries[id] = e
	return s.persist(ctx)
}

// DeleteEntry removes the entry and its slot in the insertion order.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Entries[id]; !ok {
		return common.ErrorNotFound
	}

	delete(s.state.Entries, id)
	for i, oid := range s.state.EntryOrder {
		if oid == id {
			s.state.EntryOrder = append(s.state.EntryOrder[:i], s.state.EntryOrder[i+1:]...)
			break
		}
	}
	return s.persist(ctx)
}

// ListEntriesByOwner returns the owner's entries in creation order.
func (s *Store) ListEntriesByOwner(ctx context.Context, owner string) ([]models.CredentialEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []models.CredentialEntry
	for _, id := range s.state.EntryOrder {
		e, ok := s.state.Entries[id]
		if !ok {
			continue
		}
		if e.Owner == owner {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// ownerHasService reports whether owner already has an entry named service
// other than excludeID. Must be called with at least the read lock held.
func (s *Store) ownerHasService(owner, service, excludeID string) bool {
	for _, e := range s.state.Entries {
		if e.ID != excludeID && e.Owner == owner && e.ServiceName == service {
			return true
		}
	}
	return false
}
