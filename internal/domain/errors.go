// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrInvalidInput = errors.New("invalid input")

	// Organization errors
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrOrganizationDeleted  = errors.New("organization is already deleted")
	ErrNotSoftDeleted       = errors.New("organization is not soft-deleted")

	// Subscription errors
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// Seat errors
	ErrSeatNotFound = errors.New("seat allocation not found")
	ErrSeatConflict = errors.New("concurrent seat allocation conflict")

	// Profile errors
	ErrProfileNotFound = errors.New("profile not found")

	// Offboarding errors
	ErrGracePeriodActive = errors.New("grace period has not elapsed")

	// Invoice errors
	ErrDuplicateInvoice = errors.New("invoice already recorded")
)
