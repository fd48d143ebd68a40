// Package apierror defines the closed set of errors an API operation may
// return and how each one is rendered to HTTP clients.
package apierror

import (
	"errors"
	"net/http"
)

// Kind identifies a category of failure. The set is closed: every failure an
// operation surfaces must be expressed as one of these.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindDatabase
)

// Client-facing messages for kinds that never echo their detail.
const (
	MessageDatabase = "Database error"
	MessageInternal = "Internal server error"
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindDatabase:
		return "database"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain failure with a kind and, except for Internal, a detail.
type Error struct {
	Kind   Kind
	Detail string
}

// NotFound reports a missing resource. The detail is shown to the client.
func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

// Validation reports rejected input. The detail is shown to the client.
func Validation(detail string) *Error {
	return &Error{Kind: KindValidation, Detail: detail}
}

// Database reports a storage failure. The detail is for server logs only.
func Database(detail string) *Error {
	return &Error{Kind: KindDatabase, Detail: detail}
}

// Internal reports an unexpected failure. It carries no detail.
func Internal() *Error {
	return &Error{Kind: KindInternal}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return "Resource not found: " + e.Detail
	case KindValidation:
		return "Validation error: " + e.Detail
	case KindDatabase:
		return "Database error: " + e.Detail
	default:
		return MessageInternal
	}
}

// Status returns the HTTP status code for the error.
func (e *Error) Status() int {
	return e.Kind.Status()
}

// Message returns the text a client is allowed to see.
func (e *Error) Message() string {
	switch e.Kind {
	case KindNotFound, KindValidation:
		return e.Detail
	case KindDatabase:
		return MessageDatabase
	default:
		return MessageInternal
	}
}

// Body is the JSON body of every error response.
type Body struct {
	Error string `json:"error"`
}

// ToResponse maps err to a status code and body. Errors outside the taxonomy,
// including nil, are treated as Internal.
func ToResponse(err error) (int, Body) {
	apiErr := From(err)
	return apiErr.Status(), Body{Error: apiErr.Message()}
}

// From returns the *Error in err's chain, or Internal if there is none.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr
	}
	return Internal()
}

// Is reports whether err carries an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr != nil && apiErr.Kind == kind
}
