package common

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound means the profile request failed at the API level;
	// nothing is written for that handle.
	ErrUserNotFound = errors.New("user not found")

	// ErrAPIFailure marks a response whose envelope status was not "OK",
	// as opposed to a transport or decode error.
	ErrAPIFailure = errors.New("api request failed")

	// ErrBadHandle rejects a handle before any network call.
	ErrBadHandle = errors.New("invalid handle")
)

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
