package errors

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel every ValidationError matches via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ErrAuthenticationFailed is returned for any rejected login.
// Unknown usernames and wrong passwords are deliberately indistinguishable.
var ErrAuthenticationFailed = errors.New("invalid username or password")

// ErrPermissionDenied is returned when a role is not allowed to run an operation.
var ErrPermissionDenied = errors.New("permission denied")

// ErrItemNotFound is used by drivers that need to report a missed delete as an error (HTTP 404).
// The usecase layer itself reports that outcome as a boolean.
var ErrItemNotFound = errors.New("item not found")

// ValidationKind enumerates the caller-correctable input failures.
type ValidationKind int

const (
	EmptyName ValidationKind = iota + 1
	NotAnInteger
	NonPositiveQuantity
	EmptyUsername
	DuplicateUsername
	EmptyPassword
	InvalidRole
	UnknownUser
)

func (k ValidationKind) String() string {
	switch k {
	case EmptyName:
		return "item name cannot be empty"
	case NotAnInteger:
		return "quantity must be a whole number"
	case NonPositiveQuantity:
		return "quantity must be greater than 0"
	case EmptyUsername:
		return "username cannot be empty"
	case DuplicateUsername:
		return "username already exists"
	case EmptyPassword:
		return "password cannot be empty"
	case InvalidRole:
		return "role must be one of admin, privileged, unprivileged"
	case UnknownUser:
		return "user not found"
	default:
		return fmt.Sprintf("validation kind %d", int(k))
	}
}

// ValidationError rejects a single operation without changing any state.
type ValidationError struct {
	Kind ValidationKind
}

func NewValidationError(kind ValidationKind) *ValidationError {
	return &ValidationError{Kind: kind}
}

func (e *ValidationError) Error() string {
	return e.Kind.String()
}

// Is matches ErrInvalidInput and any ValidationError of the same kind.
func (e *ValidationError) Is(target error) bool {
	if target == ErrInvalidInput {
		return true
	}
	var other *ValidationError
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	return false
}

// StorageError reports an unreadable, corrupt or unwritable backing table.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrAuthenticationFailed)
}

func IsPermissionError(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrItemNotFound)
}

func IsStorageError(err error) bool {
	var s *StorageError
	return errors.As(err, &s)
}
