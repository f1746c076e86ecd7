// Package common provides shared constants, types, and utilities
// used across the connection editor.
package common

import "errors"

// Sentinel errors for editor operations.
// These can be checked with errors.Is() for proper error handling.
var (
	// Provider errors.
	ErrProviderUnavailable = errors.New("network service unavailable")
	ErrOperationFailed     = errors.New("operation rejected by network service")

	// Lookup errors.
	ErrConnectionNotFound = errors.New("connection not found")
	ErrDeviceNotFound     = errors.New("device not found")

	// Setting errors.
	ErrInvalidSetting = errors.New("invalid setting data")
	ErrSettingMissing = errors.New("setting group missing")

	// Secret errors.
	ErrSecretNotFound = errors.New("secret not found")
	ErrSecretStorage  = errors.New("failed to store secret")
)

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
