// Package auth manages operator identities: registration, credential
// verification, and password reset. Raw passwords are never stored; only
// Argon2id-derived material is kept.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/config"
	"github.com/dmitrijs2005/credvault/internal/cryptox"
	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/models"
	"github.com/dmitrijs2005/credvault/internal/session"
)

// Repository is the slice of the storage layer the auth service needs.
type Repository interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByName(ctx context.Context, name string) (*models.User, error)
	UpdateUser(ctx context.Context, name string, fn func(*models.User) error) error
}

// Notification is the reset event handed to the external delivery
// collaborator. Delivery is out of scope for the core.
type Notification struct {
	ToEmail string
	Subject string
	Body    string
}

// Notifier receives reset notifications. A failed delivery never rolls back
// the reset itself.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type Service struct {
	repo       Repository
	notifier   Notifier
	secretKey  []byte
	sessionTTL time.Duration
	log        logging.Logger
	now        func() time.Time
}

func NewService(repo Repository, notifier Notifier, cfg *config.Config, log logging.Logger) *Service {
	return &Service{
		repo:       repo,
		notifier:   notifier,
		secretKey:  []byte(cfg.SecretKey),
		sessionTTL: cfg.SessionTTL,
		log:        log,
		now:        time.Now,
	}
}

// Register creates a new operator account. The password is stretched with a
// fresh random salt; a duplicate username leaves the existing record
// untouched.
func (s *Service) Register(ctx context.Context, username string, password []byte, email string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", fmt.Errorf("%w: username must not be empty", common.ErrorValidation)
	}
	if len(password) == 0 {
		return "", fmt.Errorf("%w: password must not be empty", common.ErrorValidation)
	}

	salt := cryptox.NewSalt()
	user := &models.User{
		Username:     username,
		PasswordHash: cryptox.DeriveKey(password, salt),
		Salt:         salt,
		Email:        email,
		CreatedAt:    s.now(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorDuplicateUsername
		}
		return "", err
	}

	s.log.Info(ctx, "user registered", "username", username)
	return username, nil
}

// Authenticate verifies the password and returns a session token bound to
// the username. An unknown username and a wrong password both come back as
// the same ErrorInvalidCredentials, and the unknown-username path still
// derives a key against a throwaway salt so the two cases cost the same.
func (s *Service) Authenticate(ctx context.Context, username string, password []byte) (string, error) {
	user, err := s.repo.GetUserByName(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.DeriveKey(password, cryptox.NewSalt())
			return "", common.ErrorInvalidCredentials
		}
		return "", err
	}

	candidate := cryptox.DeriveKey(password, user.Salt)
	if !cryptox.VerifyKey(user.PasswordHash, candidate) {
		return "", common.ErrorInvalidCredentials
	}

	token, err := session.IssueToken(user.Username, s.secretKey, s.sessionTTL)
	if err != nil {
		return "", err
	}

	s.log.Info(ctx, "user authenticated", "username", username)
	return token, nil
}

// ResetPassword replaces the user's credential material with a fresh salt
// and hash, then emits a notification event. Notification failure is logged
// and does not undo the reset.
func (s *Service) ResetPassword(ctx context.Context, username string, newPassword []byte) error {
	if len(newPassword) == 0 {
		return fmt.Errorf("%w: password must not be empty", common.ErrorValidation)
	}

	var email string
	err := s.repo.UpdateUser(ctx, username, func(u *models.User) error {
		salt := cryptox.NewSalt()
		u.Salt = salt
		u.PasswordHash = cryptox.DeriveKey(newPassword, salt)
		email = u.Email
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUserNotFound
		}
		return err
	}

	s.log.Info(ctx, "password reset", "username", username)

	n := Notification{
		ToEmail: email,
		Subject: "Password Reset Notification",
		Body:    fmt.Sprintf("The vault password for %s has been reset successfully.", username),
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.log.Warn(ctx, "reset notification failed", "username", username, "error", err)
	}

	return nil
}
