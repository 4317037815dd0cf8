package registry

import (
	"errors"
	"fmt"
)

// RegistrationError reports a conflict detected at registration time.
//
// Conflicts are fatal to the registration call, never to the process: a
// failed registration simply never took effect. They are raised
// synchronously so misconfiguration surfaces during content-pack load
// rather than later as a silent shadowing bug.
type RegistrationError struct {
	// Code identifies the conflict category.
	Code ConflictCode

	// Scope is the context scope the registration targeted.
	Scope string

	// Token is the offending token name.
	Token string

	// Message is a human-readable description.
	Message string
}

// ConflictCode categorizes registration conflicts.
type ConflictCode string

const (
	// ErrCodeScopeMismatch indicates a token carrying a foreign scope.
	ErrCodeScopeMismatch ConflictCode = "SCOPE_MISMATCH"

	// ErrCodeReservedName indicates a name containing the reserved
	// positional-argument separator.
	ErrCodeReservedName ConflictCode = "RESERVED_NAME"

	// ErrCodeParentCollision indicates a name already visible in the
	// parent context.
	ErrCodeParentCollision ConflictCode = "PARENT_COLLISION"

	// ErrCodeDuplicateToken indicates a name already in the static
	// registry.
	ErrCodeDuplicateToken ConflictCode = "DUPLICATE_TOKEN"

	// ErrCodeStaticCollision indicates a dynamic rule targeting a static
	// token's name.
	ErrCodeStaticCollision ConflictCode = "STATIC_COLLISION"
)

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("%s: %s (scope=%s, token=%s)", e.Code, e.Message, e.Scope, e.Token)
}

// IsRegistrationConflict reports whether err is a RegistrationError.
// Uses errors.As to handle wrapped errors.
func IsRegistrationConflict(err error) bool {
	var re *RegistrationError
	return errors.As(err, &re)
}

// ConflictCodeOf extracts the conflict code from err, or "" if err is not
// a RegistrationError.
func ConflictCodeOf(err error) ConflictCode {
	var re *RegistrationError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

func newScopeMismatchError(scope, token, tokenScope string) *RegistrationError {
	return &RegistrationError{
		Code:    ErrCodeScopeMismatch,
		Scope:   scope,
		Token:   token,
		Message: fmt.Sprintf("token is scoped to %q, not this context", tokenScope),
	}
}

func newReservedNameError(scope, token string) *RegistrationError {
	return &RegistrationError{
		Code:    ErrCodeReservedName,
		Scope:   scope,
		Token:   token,
		Message: "token name contains the reserved argument separator",
	}
}

func newParentCollisionError(scope, token string) *RegistrationError {
	return &RegistrationError{
		Code:    ErrCodeParentCollision,
		Scope:   scope,
		Token:   token,
		Message: "token name is already defined by the parent context",
	}
}

func newDuplicateTokenError(scope, token string) *RegistrationError {
	return &RegistrationError{
		Code:    ErrCodeDuplicateToken,
		Scope:   scope,
		Token:   token,
		Message: "token name is already registered in this scope",
	}
}

func newStaticCollisionError(scope, token string) *RegistrationError {
	return &RegistrationError{
		Code:    ErrCodeStaticCollision,
		Scope:   scope,
		Token:   token,
		Message: "dynamic rule targets a static token's name",
	}
}
