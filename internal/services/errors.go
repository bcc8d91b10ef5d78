package services

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced to the HTTP layer.
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrApplicationNotFound = errors.New("application not found")

	// ErrDuplicateEmail keeps the historical client-facing wording.
	ErrDuplicateEmail = errors.New("Email already registered!")

	ErrInvalidRole = errors.New("invalid user type")

	// ErrInvalidCredentials is deliberately generic: callers cannot tell a
	// missing account from a wrong password.
	ErrInvalidCredentials = errors.New("Invalid credentials")

	ErrInvalidStatus = errors.New("invalid application status")
)

// PermissionError is returned when a session is bound to the wrong role for
// the requested operation.
type PermissionError struct {
	AccountID uint
	Resource  string
	Action    string
	Reason    string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: account %d cannot %s %s: %s",
		e.AccountID, e.Action, e.Resource, e.Reason)
}

func NewPermissionError(accountID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		AccountID: accountID,
		Resource:  resource,
		Action:    action,
		Reason:    reason,
	}
}

// IsPermissionError reports whether err is a PermissionError.
func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}
