// Package errs defines the closed error taxonomy used across the service.
// Every failure that reaches the HTTP boundary is normalized into an *Error;
// the boundary decides status and body from the kind, never from string
// matching.
package errs

import (
	"errors"
	"net/http"

	"github.com/chefos/platform/pkg/schema"
)

// Kind discriminates the error classes the boundary knows how to shape.
type Kind int

const (
	// KindFault is an operational failure with no validation detail.
	KindFault Kind = iota
	// KindValidation carries request-validation issues verbatim.
	KindValidation
	// KindAggregate carries several member failures folded into issues.
	KindAggregate
	// KindResponseMismatch marks a handler emitting a payload that fails
	// its own declared response schema.
	KindResponseMismatch
)

// Error is the one error value the boundary understands.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Issues  []schema.Issue
}

func (e *Error) Error() string { return e.Message }

// Validation wraps request-validation issues.
func Validation(issues []schema.Issue) *Error {
	return &Error{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Message: "Validation error",
		Issues:  issues,
	}
}

// Aggregate folds several member errors into one issue list. Members keep
// their own messages; the aggregate keeps msg.
func Aggregate(msg string, members []error) *Error {
	issues := make([]schema.Issue, 0, len(members))
	for _, m := range members {
		if m == nil {
			continue
		}
		issues = append(issues, schema.Issue{
			Path:    []any{},
			Code:    schema.CodeCustom,
			Message: m.Error(),
		})
	}
	return &Error{
		Kind:    KindAggregate,
		Status:  http.StatusBadRequest,
		Message: msg,
		Issues:  issues,
	}
}

// ResponseMismatch marks a response payload that failed its declared schema.
func ResponseMismatch(issues []schema.Issue) *Error {
	return &Error{
		Kind:    KindResponseMismatch,
		Status:  http.StatusBadRequest,
		Message: "Response doesn't match the schema",
		Issues:  issues,
	}
}

// Fault builds an operational error with an explicit status.
func Fault(status int, msg string) *Error {
	return &Error{Kind: KindFault, Status: status, Message: msg}
}

// Forbidden is the 403 fault used for rejected credentials.
func Forbidden(msg string) *Error {
	return Fault(http.StatusForbidden, msg)
}

// Internal is the 500 fault.
func Internal(msg string) *Error {
	return Fault(http.StatusInternalServerError, msg)
}

// From normalizes an arbitrary error into *Error. Typed errors pass through
// unchanged; everything else becomes a 500 fault carrying the error's own
// message.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err.Error())
}
