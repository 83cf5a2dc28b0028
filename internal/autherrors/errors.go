// Package autherrors defines the error taxonomy shared by the authorization
// core. None of these conditions is transient: expiry and denial are
// deterministic outcomes of current state and are never retried.
package autherrors

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionExpired marks a session whose TTL has elapsed. Recovered
	// locally by redirecting to login.
	ErrSessionExpired = errors.New("session expired")

	// ErrSessionRejected marks an authentication rejection reported by the
	// transport layer; it triggers a global session invalidation.
	ErrSessionRejected = errors.New("session rejected")

	// ErrNotAuthorized marks an authorization denial. The action is blocked
	// before any request is submitted downstream.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrSelfDeactivation marks a tenant admin targeting their own account
	// for deactivation.
	ErrSelfDeactivation = errors.New("tenant admins cannot deactivate themselves")

	// ErrNotFound marks a missing record.
	ErrNotFound = errors.New("not found")
)

// Wrapf wraps an error with context using fmt.Errorf.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
