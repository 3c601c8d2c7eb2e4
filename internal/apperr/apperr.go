// Package apperr defines the error kinds the core returns instead of
// transport status codes. Handlers translate kinds to HTTP statuses in
// one place.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation Kind = "validation_error"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindPermission Kind = "permission_denied"
	KindStorage    Kind = "storage_failure"
	KindAuth       Kind = "auth_invalid"
)

type Error struct {
	Kind    Kind
	Message string

	// Field is set for validation errors only.
	Field string
	// Entity and ID are set for not-found errors only.
	Entity string
	ID     int

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func NotFound(entity string, id int) *Error {
	return &Error{
		Kind:    KindNotFound,
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("%s not found", entity),
	}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func PermissionDenied(message string) *Error {
	return &Error{Kind: KindPermission, Message: message}
}

func Storage(message string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: message, cause: cause}
}

func AuthInvalid(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// KindOf returns the kind carried by err, or "" for errors that did not
// originate in the core.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
