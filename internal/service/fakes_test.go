package service

// In-memory fakes standing in for the MySQL-backed stores. They enforce
// the same contracts the real repositories do: unique username/email on
// create and update, sentinel errors, idempotent revocation.

import (
	"context"
	"time"

	"github.com/iliyamo/user-auth-service/internal/config"
	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/repository"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:    "test-secret",
		AccessTTLMin: 60,
		BcryptCost:   10,
	}
}

type fakeUserStore struct {
	nextID uint64
	byID   map[uint64]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[uint64]*model.User{}}
}

func (f *fakeUserStore) taken(username, email string, excludeID uint64) bool {
	for _, u := range f.byID {
		if u.ID == excludeID {
			continue
		}
		if u.Username == username || u.Email == email {
			return true
		}
	}
	return false
}

func (f *fakeUserStore) Create(ctx context.Context, u *model.User) (*model.User, error) {
	if f.taken(u.Username, u.Email, 0) {
		return nil, repository.ErrDuplicateUser
	}
	f.nextID++
	now := time.Now().UTC()
	stored := *u
	stored.ID = f.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	f.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUserStore) Update(ctx context.Context, u *model.User) (*model.User, error) {
	if _, ok := f.byID[u.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	if f.taken(u.Username, u.Email, u.ID) {
		return nil, repository.ErrDuplicateUser
	}
	stored := *u
	stored.UpdatedAt = time.Now().UTC()
	f.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id uint64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeRevocationStore struct {
	revoked map[string]bool
	err     error // simulates an unreachable store when set
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{revoked: map[string]bool{}}
}

func (f *fakeRevocationStore) Revoke(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.revoked[tokenHash] = true
	return nil
}

func (f *fakeRevocationStore) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[tokenHash], nil
}
