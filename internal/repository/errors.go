package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors derived from the store's unique constraints. These, not
// the read-before-write checks, are what make duplicate detection safe
// under concurrent submissions.
var (
	// ErrDuplicateUsername is returned when a username is already registered.
	ErrDuplicateUsername = errors.New("username already registered")

	// ErrDuplicatePair is returned when the (participant, code) pair already
	// holds a found record.
	ErrDuplicatePair = errors.New("participant already credited for this code")
)

// isUniqueViolation detects a unique-constraint error from either backing
// store: postgres reports SQLSTATE 23505, sqlite a "UNIQUE constraint
// failed" message, and gorm's own translated error covers the rest.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
