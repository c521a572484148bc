// Package service contains the transport-independent core: the session
// authority (registration, authentication, token lifecycle) and the
// profile manager. Operations take primitive or value inputs and return
// either a result or one typed error; they never log and never format
// user-facing text. The handler layer alone decides HTTP status codes
// and messages. Any error outside the sentinels below (and the ones in
// the repository and utils packages) is an infrastructure failure and
// should surface as such.
package service

import "errors"

// ErrMissingFields is returned when a required input field is empty.
var ErrMissingFields = errors.New("missing required fields")

// ErrInvalidCredentials is returned when the password does not match the
// stored hash. Login keeps it distinct from repository.ErrNotFound
// internally; the handler collapses both into one response so callers
// cannot probe which usernames exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNoToken is returned when an operation that requires a session token
// was called without one.
var ErrNoToken = errors.New("no token supplied")

// ErrTokenRevoked is returned when the presented token appears in the
// revocation set. This check runs before cryptographic verification, so
// a revoked token is rejected even while its signature and expiry are
// still valid.
var ErrTokenRevoked = errors.New("token revoked")
