package repository

import (
	"context"
	"database/sql"
	"time"
)

// RevocationRepo persists the revocation set in the 'revoked_tokens'
// table (single unique 'token_hash' column plus expiry metadata).
type RevocationRepo struct{ DB *sql.DB }

func NewRevocationRepo(db *sql.DB) *RevocationRepo { return &RevocationRepo{DB: db} }

// Revoke records a token digest. INSERT IGNORE makes logout idempotent:
// revoking an already revoked token succeeds without touching the row.
func (r *RevocationRepo) Revoke(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO revoked_tokens (token_hash, expires_at) VALUES (?,?)",
		tokenHash, expiresAt)
	return err
}

// IsRevoked reports whether a token digest appears in the revocation set.
// Errors are propagated as-is; an unreachable store must never read as
// "not revoked".
func (r *RevocationRepo) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	var revoked bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE token_hash=?)",
		tokenHash).Scan(&revoked)
	if err != nil {
		return false, err
	}
	return revoked, nil
}

// DeleteExpired prunes rows whose tokens have outlived their own expiry.
// Such tokens are already rejected by signature verification, so pruning
// never changes a CheckAccess decision.
func (r *RevocationRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM revoked_tokens WHERE expires_at < UTC_TIMESTAMP()")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
