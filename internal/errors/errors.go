// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package errors provides error handling for research-projects.
//
// It re-exports github.com/cockroachdb/errors for wrapping, hints and
// secondary errors, and defines the domain taxonomy the saga reports:
// validation, conflict, permission, not-found and unavailable failures.
//
//	if err := repo.Create(ctx, in); err != nil {
//	    return errors.Wrapf(err, "creating project %q", in.Title)
//	}
//
//	if errors.Is(err, errors.ErrConflict) {
//	    // duplicate project
//	}
package errors

import (
	"fmt"
	"net/http"

	crdb "github.com/cockroachdb/errors"
)

var (
	New                 = crdb.New
	Newf                = crdb.Newf
	Wrap                = crdb.Wrap
	Wrapf               = crdb.Wrapf
	WithHint            = crdb.WithHint
	Mark                = crdb.Mark
	GetAllHints         = crdb.GetAllHints
	AssertionFailedf    = crdb.AssertionFailedf
	HasAssertionFailure = crdb.HasAssertionFailure
	Is                  = crdb.Is
	As                  = crdb.As
	UnwrapAll           = crdb.UnwrapAll
)

// Sentinels for errors.Is checks. Repository errors match these through
// their Is methods; wrap them to add context without losing the match.
var (
	ErrValidation  = New("validation failed")
	ErrConflict    = New("resource conflict")
	ErrForbidden   = New("forbidden")
	ErrNotFound    = New("not found")
	ErrUnavailable = New("service unavailable")
)

// MissingRequiredFieldError reports a typed form without the field needed to
// address the record once persisted.
type MissingRequiredFieldError struct {
	Field   string
	Message string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field %s", e.Field)
}

// Is matches ErrValidation.
func (e *MissingRequiredFieldError) Is(target error) bool { return target == ErrValidation }

// MissingIdentifierError reports an update without the typed record id.
type MissingIdentifierError struct {
	Entity  string
	Message string
}

func (e *MissingIdentifierError) Error() string {
	return fmt.Sprintf("missing %s identifier", e.Entity)
}

func (e *MissingIdentifierError) Is(target error) bool { return target == ErrValidation }

// InvalidFieldError reports a field whose value is out of range.
type InvalidFieldError struct {
	Field   string
	Message string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field %s", e.Field)
}

func (e *InvalidFieldError) Is(target error) bool { return target == ErrValidation }

// Invalid marks err as a validation failure carrying a user-facing hint.
func Invalid(err error, message string) error {
	return Mark(WithHint(err, message), ErrValidation)
}

// StatusError is a non-2xx response from a REST collaborator.
type StatusError struct {
	// Op names the repository operation, e.g. "create project".
	Op         string
	StatusCode int

	// Message is the server-provided message, if any.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Op, e.StatusCode)
}

// Is maps the status class onto the sentinels.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden || e.StatusCode == http.StatusUnauthorized
	case ErrValidation:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnavailable:
		return e.StatusCode >= 500
	}
	return false
}
