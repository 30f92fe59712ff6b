// Package repository implements the data access layer on top of
// database/sql. This file defines sentinel errors reused across
// repositories so handlers can map failures to HTTP responses
// without string matching.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, such as cancelling another user's
// reservation. Handlers translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrUsernameTaken is returned when a signup collides with an
// existing username. The comparison is case-insensitive because
// usernames are stored lower-cased.
var ErrUsernameTaken = errors.New("username taken")
