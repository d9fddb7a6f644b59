package storage

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/cryptox"
	"github.com/dmitrijs2005/credvault/internal/models"
	"github.com/goccy/go-yaml"
)

// SchemaVersion is written into every snapshot; loads reject anything newer.
const SchemaVersion = 1

// document is the on-disk YAML shape. Users are sorted by name and entries
// keep insertion order, so consecutive snapshots diff cleanly.
type document struct {
	Version int        `yaml:"version"`
	Users   []userDoc  `yaml:"users"`
	Entries []entryDoc `yaml:"entries"`
}

type userDoc struct {
	Username     string    `yaml:"username"`
	PasswordHash string    `yaml:"password_hash"`
	Salt         string    `yaml:"salt"`
	Email        string    `yaml:"email"`
	CreatedAt    time.Time `yaml:"created_at"`
}

type entryDoc struct {
	ID                   string    `yaml:"id"`
	Owner                string    `yaml:"owner"`
	ServiceName          string    `yaml:"service_name"`
	OfficeID             string    `yaml:"office_id,omitempty"`
	UserID               string    `yaml:"user_id"`
	Secret               string    `yaml:"secret"`
	SiteURL              string    `yaml:"site_url"`
	LastRotated          time.Time `yaml:"last_rotated"`
	RotationIntervalDays int       `yaml:"rotation_interval_days"`
	ReminderLeadDays     int       `yaml:"reminder_lead_days"`
}

// Snapshot reads and writes the vault state as a single versioned YAML file.
// Entry secrets pass through the configured cipher at this boundary, so the
// rest of the core only ever sees plaintext secrets.
type Snapshot struct {
	path   string
	cipher cryptox.Cipher
}

func NewSnapshot(path string, cipher cryptox.Cipher) *Snapshot {
	if cipher == nil {
		cipher = cryptox.NoopCipher{}
	}
	return &Snapshot{path: path, cipher: cipher}
}

// Path returns the canonical snapshot location.
func (s *Snapshot) Path() string {
	return s.path
}

// Load reads the snapshot. A missing file is the bootstrap case and yields
// an empty state; any other read, parse, or decrypt failure is reported.
func (s *Snapshot) Load() (*State, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", common.ErrorPersistence, s.path, err)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", common.ErrorPersistence, s.path, err)
	}
	if doc.Version > SchemaVersion {
		return nil, fmt.Errorf("%w: unsupported snapshot version %d", common.ErrorPersistence, doc.Version)
	}

	state := NewState()
	for _, u := range doc.Users {
		hash, err := hex.DecodeString(u.PasswordHash)
		if err != nil {
			return nil, fmt.Errorf("%w: user %q: malformed password hash", common.ErrorPersistence, u.Username)
		}
		salt, err := hex.DecodeString(u.Salt)
		if err != nil {
			return nil, fmt.Errorf("%w: user %q: malformed salt", common.ErrorPersistence, u.Username)
		}
		state.Users[u.Username] = models.User{
			Username:     u.Username,
			PasswordHash: hash,
			Salt:         salt,
			Email:        u.Email,
			CreatedAt:    u.CreatedAt,
		}
	}
	for _, e := range doc.Entries {
		secret, err := s.cipher.Open(e.Secret)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %s: %v", common.ErrorPersistence, e.ID, err)
		}
		state.Entries[e.ID] = models.CredentialEntry{
			ID:                   e.ID,
			Owner:                e.Owner,
			ServiceName:          e.ServiceName,
			OfficeID:             e.OfficeID,
			UserID:               e.UserID,
			Secret:               secret,
			SiteURL:              e.SiteURL,
			LastRotated:          e.LastRotated,
			RotationIntervalDays: e.RotationIntervalDays,
			ReminderLeadDays:     e.ReminderLeadDays,
		}
		state.EntryOrder = append(state.EntryOrder, e.ID)
	}

	return state, nil
}

// Save writes the full state to a temp file next to the snapshot and
// atomically renames it into place, so a crash mid-write leaves the prior
// snapshot intact.
func (s *Snapshot) Save(state *State) error {
	doc := document{Version: SchemaVersion}

	names := make([]string, 0, len(state.Users))
	for name := range state.Users {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		u := state.Users[name]
		doc.Users = append(doc.Users, userDoc{
			Username:     u.Username,
			PasswordHash: hex.EncodeToString(u.PasswordHash),
			Salt:         hex.EncodeToString(u.Salt),
			Email:        u.Email,
			CreatedAt:    u.CreatedAt,
		})
	}

	for _, id := range state.EntryOrder {
		e, ok := state.Entries[id]
		if !ok {
			continue
		}
		sealed, err := s.cipher.Seal(e.Secret)
		if err != nil {
			return fmt.Errorf("%w: sealing entry %s: %v", common.ErrorPersistence, e.ID, err)
		}
		doc.Entries = append(doc.Entries, entryDoc{
			ID:                   e.ID,
			Owner:                e.Owner,
			ServiceName:          e.ServiceName,
			OfficeID:             e.OfficeID,
			UserID:               e.UserID,
			Secret:               sealed,
			SiteURL:              e.SiteURL,
			LastRotated:          e.LastRotated,
			RotationIntervalDays: e.RotationIntervalDays,
			ReminderLeadDays:     e.ReminderLeadDays,
		})
	}

	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorPersistence, err)
	}

	if err := s.writeAtomic(raw); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorPersistence, err)
	}
	return nil
}

// writeAtomic stages the document in the snapshot's directory so the rename
// never crosses a filesystem boundary.
func (s *Snapshot) writeAtomic(raw []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".credvault-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(raw); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	tmp = nil

	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.path)
}
