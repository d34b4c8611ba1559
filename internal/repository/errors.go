// Package repository contains data access logic separated from HTTP
// handlers.  Sentinel errors defined here let handlers distinguish failure
// scenarios without inspecting driver error strings themselves.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller's role does not permit the
// requested read, such as a customer asking for the activity log.  Handlers
// translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is the base not-found error; per-entity sentinels wrap the
// same idea with a concrete message.
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrAccommodationNotFound = errors.New("accommodation not found")
	ErrAmenityNotFound       = errors.New("amenity not found")
)

// Uniqueness violations surfaced to handlers as 409 responses.
var (
	ErrEmailExists    = errors.New("email already exists")
	ErrUsernameExists = errors.New("username already exists")
)

// isDuplicateKey reports whether err is a MySQL duplicate-key error (1062)
// on an index whose name contains the given fragment.  The driver does not
// expose the violated index as a field, so the message is matched the same
// way the rest of the codebase matches 1062.
func isDuplicateKey(err error, indexFragment string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1062") && strings.Contains(msg, indexFragment)
}
