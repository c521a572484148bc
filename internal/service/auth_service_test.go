package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

func newAuthService() (*AuthService, *fakeUserStore, *fakeRevocationStore) {
	users := newFakeUserStore()
	revoked := newFakeRevocationStore()
	return NewAuthService(testConfig(), users, revoked), users, revoked
}

func mustRegister(t *testing.T, s *AuthService) *model.User {
	t.Helper()
	u, err := s.Register(context.Background(), "Alice", "alice@x.com", "alice", "pw123")
	require.NoError(t, err)
	return u
}

func TestRegister(t *testing.T) {
	s, _, _ := newAuthService()

	u := mustRegister(t, s)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@x.com", u.Email)
	assert.Equal(t, "alice", u.Username)
	// Stored hash is never empty and never the plaintext.
	require.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "pw123", u.PasswordHash)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "pw123"))
}

func TestRegisterMissingFields(t *testing.T) {
	s, _, _ := newAuthService()

	for _, tc := range []struct {
		name, email, username, password string
	}{
		{"", "a@x.com", "a", "pw"},
		{"A", "", "a", "pw"},
		{"A", "a@x.com", "", "pw"},
		{"A", "a@x.com", "a", ""},
	} {
		_, err := s.Register(context.Background(), tc.name, tc.email, tc.username, tc.password)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s, users, _ := newAuthService()

	first := mustRegister(t, s)
	_, err := s.Register(context.Background(), "Other", "other@x.com", "alice", "pw456")
	assert.ErrorIs(t, err, repository.ErrDuplicateUser)

	// The first user persists unchanged.
	stored, err := users.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Email, stored.Email)
	assert.Equal(t, first.PasswordHash, stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s, _, _ := newAuthService()

	mustRegister(t, s)
	_, err := s.Register(context.Background(), "Other", "alice@x.com", "other", "pw456")
	assert.ErrorIs(t, err, repository.ErrDuplicateUser)
}

func TestAuthenticate(t *testing.T) {
	s, _, _ := newAuthService()
	registered := mustRegister(t, s)

	u, token, err := s.Authenticate(context.Background(), "alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	require.NotEmpty(t, token.Token)

	uid, err := utils.ParseAccessToken(testConfig().JWTSecret, token.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, uid)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	s, _, _ := newAuthService()
	mustRegister(t, s)

	// Prior successful logins never weaken the check.
	for i := 0; i < 3; i++ {
		_, _, err := s.Authenticate(context.Background(), "alice", "pw123")
		require.NoError(t, err)
	}
	_, _, err := s.Authenticate(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	s, _, _ := newAuthService()

	// Kept distinct from ErrInvalidCredentials internally; the handler
	// collapses both into one response.
	_, _, err := s.Authenticate(context.Background(), "nobody", "pw123")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCheckAccessLifecycle(t *testing.T) {
	s, _, _ := newAuthService()
	registered := mustRegister(t, s)

	_, token, err := s.Authenticate(context.Background(), "alice", "pw123")
	require.NoError(t, err)

	// Valid until logged out, returning the same user id each time.
	for i := 0; i < 2; i++ {
		uid, err := s.CheckAccess(context.Background(), token.Token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, uid)
	}

	require.NoError(t, s.Logout(context.Background(), token.Token))

	_, err = s.CheckAccess(context.Background(), token.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestLogoutIdempotent(t *testing.T) {
	s, _, _ := newAuthService()
	mustRegister(t, s)

	_, token, err := s.Authenticate(context.Background(), "alice", "pw123")
	require.NoError(t, err)

	assert.NoError(t, s.Logout(context.Background(), token.Token))
	assert.NoError(t, s.Logout(context.Background(), token.Token))
}

func TestLogoutNoToken(t *testing.T) {
	s, _, _ := newAuthService()
	assert.ErrorIs(t, s.Logout(context.Background(), ""), ErrNoToken)
}

func TestCheckAccessNoToken(t *testing.T) {
	s, _, _ := newAuthService()
	_, err := s.CheckAccess(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestCheckAccessRevokedBeforeVerification(t *testing.T) {
	s, _, _ := newAuthService()

	// An already expired token can still be logged out, and the
	// revocation verdict takes priority over the expiry verdict.
	expired, err := utils.NewAccessToken(testConfig().JWTSecret, 1, -1)
	require.NoError(t, err)

	require.NoError(t, s.Logout(context.Background(), expired.Token))

	_, err = s.CheckAccess(context.Background(), expired.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestCheckAccessExpired(t *testing.T) {
	s, _, _ := newAuthService()

	expired, err := utils.NewAccessToken(testConfig().JWTSecret, 1, -1)
	require.NoError(t, err)

	_, err = s.CheckAccess(context.Background(), expired.Token)
	assert.ErrorIs(t, err, utils.ErrTokenNotValid)
}

func TestCheckAccessForeignSignature(t *testing.T) {
	s, _, _ := newAuthService()

	forged, err := utils.NewAccessToken("attacker-secret", 1, 60)
	require.NoError(t, err)

	_, err = s.CheckAccess(context.Background(), forged.Token)
	assert.ErrorIs(t, err, utils.ErrTokenNotValid)
}

func TestCheckAccessMalformed(t *testing.T) {
	s, _, _ := newAuthService()

	_, err := s.CheckAccess(context.Background(), "garbage")
	assert.ErrorIs(t, err, utils.ErrTokenMalformed)
}

func TestCheckAccessStoreUnavailable(t *testing.T) {
	s, _, revoked := newAuthService()
	mustRegister(t, s)

	_, token, err := s.Authenticate(context.Background(), "alice", "pw123")
	require.NoError(t, err)

	// An unreachable revocation store must fail the check, not read as
	// "not revoked".
	revoked.err = errors.New("connection refused")
	_, err = s.CheckAccess(context.Background(), token.Token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTokenRevoked)
	assert.NotErrorIs(t, err, utils.ErrTokenNotValid)
}
