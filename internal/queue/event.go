// Package queue defines message payloads exchanged over the message
// broker and the background consumer that turns them into an audit log.
package queue

// AuthEventsQueue is the durable queue carrying account-lifecycle events.
const AuthEventsQueue = "auth.events"

// Event types published by the service.
const (
	EventUserRegistered = "user.registered"
	EventUserLoggedIn   = "user.logged_in"
	EventUserLoggedOut  = "user.logged_out"
	EventUserDeleted    = "user.deleted"
)

// AuthEvent is published on registration, login, logout and account
// deletion. It carries enough for downstream consumers to audit or
// notify without querying the primary database. Logout events identify
// the session by token digest only; the raw token is never put on the
// wire.
type AuthEvent struct {
	Type        string `json:"type"`
	UserID      uint64 `json:"user_id,omitempty"`
	Username    string `json:"username,omitempty"`
	TokenDigest string `json:"token_digest,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}
