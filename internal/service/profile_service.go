package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/user-auth-service/internal/config"
	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

// ProfileFields carries a partial profile update. Empty fields keep
// their current value; a supplied password is re-hashed before storage,
// everything else passes through untransformed.
type ProfileFields struct {
	Name     string
	Email    string
	Username string
	Password string
}

// ProfileService reads, updates and deletes the authenticated user's own
// record. Identity checks happen upstream in AuthService; by the time a
// request reaches here the user id comes from a verified token.
type ProfileService struct {
	cfg   config.Config
	users UserStore
}

func NewProfileService(cfg config.Config, users UserStore) *ProfileService {
	return &ProfileService{cfg: cfg, users: users}
}

// Get returns the profile for the given user id. A token can outlive its
// account: when the id no longer resolves the caller gets
// repository.ErrNotFound here, not at token verification.
func (s *ProfileService) Get(ctx context.Context, id uint64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update merges the supplied fields into the current record and persists
// the result, returning the refreshed row.
func (s *ProfileService) Update(ctx context.Context, id uint64, fields ProfileFields) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(fields.Name); v != "" {
		u.Name = v
	}
	if v := strings.TrimSpace(fields.Email); v != "" {
		u.Email = v
	}
	if v := strings.TrimSpace(fields.Username); v != "" {
		u.Username = v
	}
	if fields.Password != "" {
		hash, err := utils.HashPassword(fields.Password, s.cfg.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}
	return s.users.Update(ctx, u)
}

// Delete removes the user record. Outstanding tokens for the account are
// not revoked: they keep passing CheckAccess until expiry, and fail with
// repository.ErrNotFound once profile data is fetched.
func (s *ProfileService) Delete(ctx context.Context, id uint64) error {
	return s.users.Delete(ctx, id)
}
