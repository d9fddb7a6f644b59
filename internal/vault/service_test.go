package vault

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/config"
	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/models"
	"github.com/dmitrijs2005/credvault/internal/session"
	"github.com/dmitrijs2005/credvault/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "test-secret"

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:            testSecretKey,
		SessionTTL:           time.Hour,
		RotationIntervalDays: 30,
		ReminderLeadDays:     7,
	}
}

// newTestService wires the service over a real snapshot-backed store and
// registers the given usernames directly in the store.
func newTestService(t *testing.T, usernames ...string) (*Service, *storage.Store) {
	t.Helper()

	snap := storage.NewSnapshot(filepath.Join(t.TempDir(), "vault.yaml"), nil)
	store, err := storage.NewStore(snap, testLogger())
	require.NoError(t, err)

	for _, name := range usernames {
		require.NoError(t, store.CreateUser(context.Background(), &models.User{
			Username:  name,
			CreatedAt: time.Now().UTC(),
		}))
	}

	return NewService(store, testConfig(), testLogger()), store
}

func tokenFor(t *testing.T, username string) string {
	t.Helper()
	token, err := session.IssueToken(username, []byte(testSecretKey), time.Hour)
	require.NoError(t, err)
	return token
}

func addReq(service string) AddRequest {
	return AddRequest{
		ServiceName: service,
		UserID:      "u1",
		Secret:      "s1",
		SiteURL:     "http://x",
	}
}

func TestAdd(t *testing.T) {
	s, _ := newTestService(t, "alice")
	ctx := context.Background()
	token := tokenFor(t, "alice")

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	id, err := s.Add(ctx, token, addReq("mail"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.Get(ctx, token, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Owner)
	assert.Equal(t, "mail", got.ServiceName)
	assert.True(t, got.LastRotated.Equal(now))
	// Defaults applied from config.
	assert.Equal(t, 30, got.RotationIntervalDays)
	assert.Equal(t, 7, got.ReminderLeadDays)
}

func TestAdd_DuplicateService(t *testing.T) {
	s, _ := newTestService(t, "alice")
	ctx := context.Background()
	token := tokenFor(t, "alice")

	_, err := s.Add(ctx, token, addReq("mail"))
	require.NoError(t, err)

	_, err = s.Add(ctx, token, addReq("mail"))
	assert.ErrorIs(t, err, common.ErrorDuplicateEntry)

	entries, err := s.List(ctx, token)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAdd_Validation(t *testing.T) {
	s, _ := newTestService(t, "alice")
	ctx := context.Background()
	token := tokenFor(t, "alice")

	tests := []struct {
		name string
		req  AddRequest
	}{
		{"missing service name", AddRequest{UserID: "u", Secret: "s"}},
		{"missing user id", AddRequest{ServiceName: "svc", Secret: "s"}},
		{"missing secret", AddRequest{ServiceName: "svc", UserID: "u"}},
		{"lead not shorter than interval", AddRequest{
			ServiceName: "svc", UserID: "u", Secret: "s",
			RotationIntervalDays: 7, ReminderLeadDays: 7,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Add(ctx, token, tt.req)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestAdd_InvalidToken(t *testing.T) {
	s, _ := newTestService(t, "alice")

	_, err := s.Add(context.Background(), "bogus", addReq("mail"))
	assert.ErrorIs(t, err, common.ErrorInvalidToken)
}

func TestList_CreationOrder(t *testing.T) {
	s, _ := newTestService(t, "alice")
	ctx := context.Background()
	token := tokenFor(t, "alice")

	for _, svc := range []string{"zeta", "mail", "alpha"} {
		_, err := s.Add(ctx, token, addReq(svc))
		require.NoError(t, err)
	}

	entries, err := s.List(ctx, token)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "zeta", entries[0].ServiceName)
	assert.Equal(t, "mail", entries[1].ServiceName)
	assert.Equal(t, "alpha", entries[2].ServiceName)
}

func TestGet_NotFoundVsForbidden(t *testing.T) {
	s, _ := newTestService(t, "alice", "bob")
	ctx := context.Background()
	aliceToken := tokenFor(t, "alice")
	bobToken := tokenFor(t, "bob")

	id, err := s.Add(ctx, aliceToken, addReq("mail"))
	require.NoError(t, err)

	_, err = s.Get(ctx, aliceToken, "missing")
	assert.ErrorIs(t, err, common.ErrorEntryNotFound)

	_, err = s.Get(ctx, bobToken, id)
	assert.ErrorIs(t, err, common.ErrorForbidden)
}

func TestUpdate_SecretResetsRotationTimer(t *testing.T) {
	s, _ := newTestService(t, "alice")
	ctx := context.Background()
	token := tokenFor(t, "alice")

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return created }

	id, err := s.Add(ctx, token, addReq("mail"))
	require.NoError(t, err)

	later := created.Add(10 * 24 * time.Hour)
	s.now = func() time.Time { return later }

	// Updating only the site URL leaves the timer alone.
	require.NoError(t, s.Update(ctx, token, id, UpdateRequest{SiteURL: "http://new"}))
	got, err := s.Get(ctx, token, id)
	require.NoError(t, err)
	assert.True(t, got.LastRotated.Equal(created))
	assert.Equal(t, "http://new", got.SiteURL)

	// Updating the secret resets it.
	require.NoError(t, s.Update(ctx, token, id, UpdateRequest{Secret: "s2"}))
	got, err = s.Get(ctx, token, id)
	require.NoError(t, err)
	assert.True(t, got.LastRotated.Equal(later))
	assert.Equal(t, "s2", got.Secret)
}

func TestUpdate_BlankKeepsCurrent(t *testing.T) {
	s, _ := newTestService(t, "alice")
	ctx := context.Background()
	token := tokenFor(t, "alice")

	id, err := s.Add(ctx, token, AddRequest{
		ServiceName: "mail", OfficeID: "HQ", UserID: "u1", Secret: "s1", SiteURL: "http://x",
	})
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, token, id, UpdateRequest{UserID: "u2"}))

	got, err := s.Get(ctx, token, id)
	require.NoError(t, err)
	assert.Equal(t, "u2", got.UserID)
	assert.Equal(t, "mail", got.ServiceName)
	assert.Equal(t, "HQ", got.OfficeID)
	assert.Equal(t, "s1", got.Secret)
	assert.Equal(t, "http://x", got.SiteURL)
}

func TestUpdate_Errors(t *testing.T) {
	s, _ := newTestService(t, "alice", "bob")
	ctx := context.Background()
	aliceToken := tokenFor(t, "alice")
	bobToken := tokenFor(t, "bob")

	id, err := s.Add(ctx, aliceToken, addReq("mail"))
	require.NoError(t, err)
	_, err = s.Add(ctx, aliceToken, addReq("bank"))
	require.NoError(t, err)

	assert.ErrorIs(t, s.Update(ctx, aliceToken, "missing", UpdateRequest{UserID: "u"}), common.ErrorEntryNotFound)
	assert.ErrorIs(t, s.Update(ctx, bobToken, id, UpdateRequest{UserID: "u"}), common.ErrorForbidden)
	assert.ErrorIs(t, s.Update(ctx, aliceToken, id, UpdateRequest{ServiceName: "bank"}), common.ErrorDuplicateEntry)
}

func TestDelete(t *testing.T) {
	s, _ := newTestService(t, "alice", "bob")
	ctx := context.Background()
	aliceToken := tokenFor(t, "alice")
	bobToken := tokenFor(t, "bob")

	id, err := s.Add(ctx, aliceToken, addReq("mail"))
	require.NoError(t, err)

	assert.ErrorIs(t, s.Delete(ctx, bobToken, id), common.ErrorForbidden)

	require.NoError(t, s.Delete(ctx, aliceToken, id))
	assert.ErrorIs(t, s.Delete(ctx, aliceToken, id), common.ErrorEntryNotFound)

	entries, err := s.List(ctx, aliceToken)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDueForReminder(t *testing.T) {
	s, _ := newTestService(t, "alice")
	ctx := context.Background()
	token := tokenFor(t, "alice")

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return created }

	_, err := s.Add(ctx, token, addReq("mail"))
	require.NoError(t, err)

	due, err := s.DueForReminder(ctx, token)
	require.NoError(t, err)
	assert.Empty(t, due)

	s.now = func() time.Time { return created.Add(25 * 24 * time.Hour) }
	due, err = s.DueForReminder(ctx, token)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "mail", due[0].Entry.ServiceName)
	assert.Equal(t, 5, due[0].DaysRemaining)
}
