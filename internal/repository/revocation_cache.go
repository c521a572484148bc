package repository

// This file wraps the revocation repository with a Redis cache so the
// per-request revocation lookup is a single round trip in the common
// case. Only positive entries ("this digest is revoked") are cached;
// a miss or a Redis failure always falls through to MySQL, which stays
// the single source of truth. Entries carry the token's own expiry as
// TTL, after which the signature check rejects the token anyway.

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedRevocationStore layers Redis in front of a RevocationRepo. A nil
// Redis client disables caching and every call goes straight to MySQL.
type CachedRevocationStore struct {
	inner  *RevocationRepo
	rdb    *redis.Client
	prefix string
}

func NewCachedRevocationStore(inner *RevocationRepo, rdb *redis.Client) *CachedRevocationStore {
	return &CachedRevocationStore{inner: inner, rdb: rdb, prefix: "revoked:"}
}

// Revoke writes to MySQL first, then mirrors the entry into Redis on a
// best-effort basis. A failed cache write is ignored: the next IsRevoked
// miss reads the row from MySQL.
func (s *CachedRevocationStore) Revoke(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	if err := s.inner.Revoke(ctx, tokenHash, expiresAt); err != nil {
		return err
	}
	s.cacheSet(ctx, tokenHash, expiresAt)
	return nil
}

// IsRevoked checks Redis for a positive entry and falls through to MySQL
// on miss or cache error. A MySQL hit is backfilled into the cache.
func (s *CachedRevocationStore) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	if s.rdb != nil {
		if err := s.rdb.Get(ctx, s.prefix+tokenHash).Err(); err == nil {
			return true, nil
		}
	}
	revoked, err := s.inner.IsRevoked(ctx, tokenHash)
	if err != nil {
		return false, err
	}
	if revoked {
		s.cacheSet(ctx, tokenHash, time.Now().UTC().Add(time.Minute))
	}
	return revoked, nil
}

func (s *CachedRevocationStore) cacheSet(ctx context.Context, tokenHash string, expiresAt time.Time) {
	if s.rdb == nil {
		return
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	_ = s.rdb.Set(ctx, s.prefix+tokenHash, "1", ttl).Err()
}
