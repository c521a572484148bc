package model

import "time"

// User mirrors the `users` table. The password hash never leaves the
// service; handlers define separate response types with JSON tags and
// omit it.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique email address (stored lower-cased).
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password, never empty.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RevokedToken models a row in the `revoked_tokens` table: the revocation
// set of session tokens invalidated by logout. The token itself is not
// stored; only its SHA-256 hex digest. ExpiresAt records when the token
// would have expired on its own, so stale rows can be garbage collected
// without affecting any verification decision.
//
// Fields:
//  ID        – primary key identifier.
//  TokenHash – SHA-256 hex digest of the token string (unique).
//  ExpiresAt – upper bound on the token's own lifetime.
//  RevokedAt – when logout recorded the token.
type RevokedToken struct {
	ID        uint64    // revoked_tokens.id
	TokenHash string    // revoked_tokens.token_hash
	ExpiresAt time.Time // revoked_tokens.expires_at
	RevokedAt time.Time // revoked_tokens.revoked_at
}
