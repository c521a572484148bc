package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/user-auth-service/internal/config"
	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

// UserStore is the slice of the credential store the services depend on.
// *repository.UserRepo satisfies it; tests substitute an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	Update(ctx context.Context, u *model.User) (*model.User, error)
	Delete(ctx context.Context, id uint64) error
}

// RevocationStore tracks token digests invalidated by logout.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenHash string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}

// dummyHash is a bcrypt digest of a throwaway value. When login hits an
// unknown username we still run one bcrypt comparison against it, so the
// not-found and wrong-password paths cost the same and cannot be told
// apart by timing.
const dummyHash = "$2a$12$K3JNi5vQMvZ8J4mzV3nYeOBhFNvNZgz1PAdkCeBBxFOWy9dDbeCVW"

// AuthService is the session authority: it registers accounts, verifies
// credentials, issues bearer tokens and tracks their revocation. Tokens
// are stateless HS256 JWTs; the only session state the service keeps is
// the revocation set behind RevocationStore.
type AuthService struct {
	cfg     config.Config
	users   UserStore
	revoked RevocationStore
}

func NewAuthService(cfg config.Config, users UserStore, revoked RevocationStore) *AuthService {
	return &AuthService{cfg: cfg, users: users, revoked: revoked}
}

// Register creates a new account with a hashed password and returns the
// stored user. Duplicate username or email surfaces as
// repository.ErrDuplicateUser straight from the store's unique indexes;
// there is no check-then-act window between two concurrent registrations.
func (s *AuthService) Register(ctx context.Context, name, email, username, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if name == "" || email == "" || username == "" || password == "" {
		return nil, ErrMissingFields
	}
	hash, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.users.Create(ctx, &model.User{
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	})
}

// Authenticate verifies a username/password pair and, on success, issues
// a fresh session token bound to the user's id. Unknown usernames return
// repository.ErrNotFound and wrong passwords ErrInvalidCredentials; the
// handler maps both to the same response.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, utils.AccessToken, error) {
	if username == "" || password == "" {
		return nil, utils.AccessToken{}, ErrMissingFields
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		// Burn a bcrypt comparison so this path is not faster than a
		// password mismatch.
		utils.VerifyPassword(dummyHash, password)
		return nil, utils.AccessToken{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, utils.AccessToken{}, ErrInvalidCredentials
	}
	token, err := utils.NewAccessToken(s.cfg.JWTSecret, u.ID, s.cfg.AccessTTLMin)
	if err != nil {
		return nil, utils.AccessToken{}, fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// Logout records the token in the revocation set. The token is not
// verified first: clients may log out tokens that already expired, and
// logging out twice succeeds both times. The stored expiry is an upper
// bound on the token's lifetime, kept only so old rows can be pruned.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrNoToken
	}
	expiresAt := time.Now().UTC().Add(time.Duration(s.cfg.AccessTTLMin) * time.Minute)
	return s.revoked.Revoke(ctx, utils.HashToken(token), expiresAt)
}

// CheckAccess decides whether a presented token grants a session and
// returns the user id it is bound to. The order is fixed: missing-token
// check, then the revocation set, then cryptographic verification. A
// revoked token is rejected even while its signature and expiry are
// still valid, and an unreachable revocation store fails the request
// rather than reading as "not revoked".
func (s *AuthService) CheckAccess(ctx context.Context, token string) (uint64, error) {
	if token == "" {
		return 0, ErrNoToken
	}
	revoked, err := s.revoked.IsRevoked(ctx, utils.HashToken(token))
	if err != nil {
		return 0, fmt.Errorf("revocation lookup: %w", err)
	}
	if revoked {
		return 0, ErrTokenRevoked
	}
	return utils.ParseAccessToken(s.cfg.JWTSecret, token)
}
