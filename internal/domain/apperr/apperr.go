// Package apperr defines the sentinel errors shared across the service.
// Callers branch on these with errors.Is, never on message text; the HTTP
// layer maps each one to a fixed status/message pair.
package apperr

import (
	"errors"
)

var (
	// ErrInvalidCredentials is returned when login credentials do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned when no account exists for an identity.
	ErrUserNotFound = errors.New("user not found")

	// ErrProfileCreationFailed is returned when a profile record could not
	// be resolved or created after registration.
	ErrProfileCreationFailed = errors.New("profile creation failed")

	// ErrUnauthorized is returned on a role mismatch (admin-only or
	// student-only operation invoked by the wrong principal).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyEnrolled is returned when the (user, course) relation
	// already exists.
	ErrAlreadyEnrolled = errors.New("already enrolled")

	// ErrEnrollmentFailed wraps gateway failures during enroll.
	ErrEnrollmentFailed = errors.New("enrollment failed")

	// ErrUnenrollmentFailed wraps gateway failures during unenroll.
	ErrUnenrollmentFailed = errors.New("unenrollment failed")

	// ErrNotFound is returned when a requested record is absent.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when the backing store is unreachable.
	ErrUnavailable = errors.New("service unavailable")
)
