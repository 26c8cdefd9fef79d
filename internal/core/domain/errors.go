package domain

import "errors"

var (
	// ErrInvalidReport signals a malformed ingestion payload: blank deviceId
	// or a timestamp that is missing, non-finite, or not positive.
	ErrInvalidReport = errors.New("invalid report")

	// ErrInvalidCommand signals a malformed control payload.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrDeviceNotFound signals that no entry exists for the requested device.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrInvalidCredentials signals an unknown username or a password mismatch.
	// Callers must not be able to distinguish the two cases.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists signals a duplicate username on user creation.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound signals a lookup for an unknown username.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidRole signals a role outside the enumerated set.
	ErrInvalidRole = errors.New("invalid role")
)
