// Package vault is the owner-scoped credential store: CRUD over entries,
// bulk import of normalized rows, and rotation-reminder listings. Every
// operation takes a session token; the owner it is bound to scopes all
// access.
package vault

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/config"
	"github.com/dmitrijs2005/credvault/internal/expiry"
	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/models"
	"github.com/dmitrijs2005/credvault/internal/session"
	"github.com/google/uuid"
)

// Repository is the slice of the storage layer the vault service needs.
type Repository interface {
	CreateEntry(ctx context.Context, e *models.CredentialEntry) error
	GetEntry(ctx context.Context, id string) (*models.CredentialEntry, error)
	UpdateEntry(ctx context.Context, id string, fn func(*models.CredentialEntry) error) error
	DeleteEntry(ctx context.Context, id string) error
	ListEntriesByOwner(ctx context.Context, owner string) ([]models.CredentialEntry, error)
}

// AddRequest carries the fields for a new entry. ServiceName, UserID, and
// Secret are required; zero rotation fields fall back to the configured
// defaults.
type AddRequest struct {
	ServiceName          string
	OfficeID             string
	UserID               string
	Secret               string
	SiteURL              string
	RotationIntervalDays int
	ReminderLeadDays     int
}

// UpdateRequest carries partial changes. A blank field keeps the stored
// value, mirroring the interactive "leave blank to keep current" convention.
type UpdateRequest struct {
	ServiceName string
	OfficeID    string
	UserID      string
	Secret      string
	SiteURL     string
}

type Service struct {
	repo                 Repository
	secretKey            []byte
	rotationIntervalDays int
	reminderLeadDays     int
	log                  logging.Logger
	now                  func() time.Time
}

func NewService(repo Repository, cfg *config.Config, log logging.Logger) *Service {
	return &Service{
		repo:                 repo,
		secretKey:            []byte(cfg.SecretKey),
		rotationIntervalDays: cfg.RotationIntervalDays,
		reminderLeadDays:     cfg.ReminderLeadDays,
		log:                  log,
		now:                  time.Now,
	}
}

// owner resolves the session token to the username it is bound to.
func (s *Service) owner(token string) (string, error) {
	return session.OwnerFromToken(token, s.secretKey)
}

// Add creates an entry for the session owner with LastRotated set to now.
func (s *Service) Add(ctx context.Context, token string, req AddRequest) (string, error) {
	owner, err := s.owner(token)
	if err != nil {
		return "", err
	}
	return s.addForOwner(ctx, owner, req)
}

func (s *Service) addForOwner(ctx context.Context, owner string, req AddRequest) (string, error) {
	if err := validateRequired(req); err != nil {
		return "", err
	}

	if req.RotationIntervalDays == 0 {
		req.RotationIntervalDays = s.rotationIntervalDays
	}
	if req.ReminderLeadDays == 0 {
		req.ReminderLeadDays = s.reminderLeadDays
	}
	if req.RotationIntervalDays < 0 || req.ReminderLeadDays < 0 ||
		req.ReminderLeadDays >= req.RotationIntervalDays {
		return "", fmt.Errorf("%w: reminder lead (%d days) must be shorter than the rotation interval (%d days)",
			common.ErrorValidation, req.ReminderLeadDays, req.RotationIntervalDays)
	}

	entry := &models.CredentialEntry{
		ID:                   uuid.New().String(),
		Owner:                owner,
		ServiceName:          req.ServiceName,
		OfficeID:             req.OfficeID,
		UserID:               req.UserID,
		Secret:               req.Secret,
		SiteURL:              req.SiteURL,
		LastRotated:          s.now(),
		RotationIntervalDays: req.RotationIntervalDays,
		ReminderLeadDays:     req.ReminderLeadDays,
	}

	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorDuplicateEntry
		}
		if errors.Is(err, common.ErrorUserNotFound) {
			return "", common.ErrorUserNotFound
		}
		return "", err
	}

	s.log.Info(ctx, "entry added", "owner", owner, "service", req.ServiceName, "id", entry.ID)
	return entry.ID, nil
}

func validateRequired(req AddRequest) error {
	if req.ServiceName == "" {
		return fmt.Errorf("%w: service name is required", common.ErrorValidation)
	}
	if req.UserID == "" {
		return fmt.Errorf("%w: user id is required", common.ErrorValidation)
	}
	if req.Secret == "" {
		return fmt.Errorf("%w: secret is required", common.ErrorValidation)
	}
	return nil
}

// List returns the owner's entries in creation order.
func (s *Service) List(ctx context.Context, token string) ([]models.CredentialEntry, error) {
	owner, err := s.owner(token)
	if err != nil {
		return nil, err
	}
	return s.repo.ListEntriesByOwner(ctx, owner)
}

// Get returns one entry. An entry owned by a different user is reported as
// ErrorForbidden, distinct from ErrorEntryNotFound.
func (s *Service) Get(ctx context.Context, token string, id string) (*models.CredentialEntry, error) {
	owner, err := s.owner(token)
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorEntryNotFound
		}
		return nil, err
	}
	if entry.Owner != owner {
		return nil, common.ErrorForbidden
	}
	return entry, nil
}

// Update applies the non-blank fields of req. Changing the secret resets
// LastRotated; changing anything else leaves it untouched. Renaming the
// service re-checks per-owner uniqueness.
func (s *Service) Update(ctx context.Context, token string, id string, req UpdateRequest) error {
	owner, err := s.owner(token)
	if err != nil {
		return err
	}

	err = s.repo.UpdateEntry(ctx, id, func(e *models.CredentialEntry) error {
		if e.Owner != owner {
			return common.ErrorForbidden
		}
		if req.ServiceName != "" {
			e.ServiceName = req.ServiceName
		}
		if req.OfficeID != "" {
			e.OfficeID = req.OfficeID
		}
		if req.UserID != "" {
			e.UserID = req.UserID
		}
		if req.SiteURL != "" {
			e.SiteURL = req.SiteURL
		}
		if req.Secret != "" {
			e.Secret = req.Secret
			e.LastRotated = s.now()
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorForbidden):
			return common.ErrorForbidden
		case errors.Is(err, common.ErrorNotFound):
			return common.ErrorEntryNotFound
		case errors.Is(err, common.ErrorAlreadyExists):
			return common.ErrorDuplicateEntry
		}
		return err
	}

	s.log.Info(ctx, "entry updated", "owner", owner, "id", id)
	return nil
}

// Delete removes one of the owner's entries.
func (s *Service) Delete(ctx context.Context, token string, id string) error {
	owner, err := s.owner(token)
	if err != nil {
		return err
	}

	entry, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorEntryNotFound
		}
		return err
	}
	if entry.Owner != owner {
		return common.ErrorForbidden
	}

	if err := s.repo.DeleteEntry(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorEntryNotFound
		}
		return err
	}

	s.log.Info(ctx, "entry deleted", "owner", owner, "id", id)
	return nil
}

// DueForReminder returns the owner's entries inside their reminder window or
// past due, most urgent first.
func (s *Service) DueForReminder(ctx context.Context, token string) ([]expiry.Reminder, error) {
	owner, err := s.owner(token)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ListEntriesByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	return expiry.DueForReminder(entries, s.now()), nil
}
