// Package repository implements the credential store over MySQL. This
// file defines sentinel errors shared by the repositories so that the
// service layer can distinguish failure scenarios without inspecting
// driver errors. ErrNotFound covers lookups, updates and deletes that
// matched no row; ErrDuplicateUser signals that the unique index on
// username or email rejected an insert or update.
package repository

import "errors"

// ErrNotFound is returned when no user row matches the given id or
// username. The service layer decides whether this surfaces as a 404
// (profile operations) or is collapsed into "invalid credentials"
// (login).
var ErrNotFound = errors.New("user not found")

// ErrDuplicateUser is returned when an insert or update violates the
// unique index on username or email. Uniqueness is enforced by the
// database itself, not by a prior SELECT, so two concurrent
// registrations with the same username cannot both succeed.
var ErrDuplicateUser = errors.New("username or email already exists")
