// Package apperrors provides the application error taxonomy and its mapping
// to HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindClientInput
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindClientInput:
		return "client_input"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is an application error carrying a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ClientInput reports missing or invalid request fields.
func ClientInput(message string) *Error {
	return &Error{Kind: KindClientInput, Message: message}
}

// NotFound reports an absent entity.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict reports a duplicate unique field.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal wraps an unexpected failure. The cause is never shown to clients.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// Entity errors
var (
	ErrUserNotFound   = NotFound("User not found")
	ErrUsersNotFound  = NotFound("Users not found")
	ErrMovieNotFound  = NotFound("Movie not found")
	ErrGenreNotFound  = NotFound("Genre not found")
	ErrGenreExists    = Conflict("Genre already exists")
	ErrEmailTaken     = Conflict("Email already in use")
	ErrGenreHasMovies = Conflict("Genre still has movies")
)

// Input errors
var (
	ErrUserFieldsRequired  = ClientInput("Name and email are required fields.")
	ErrInvalidUsername     = ClientInput("Invalid username. It must be between 2 and 30 characters long.")
	ErrInvalidEmail        = ClientInput("Invalid email format. Make sure it includes: '@', '.'")
	ErrGenreNameRequired   = ClientInput("Genre name is required")
	ErrMovieFieldsRequired = ClientInput("Please provide all required fields")
	ErrLanguageNotString   = ClientInput("Language must be a string")
	ErrYearNotInteger      = ClientInput("Year must be an integer")
	ErrImageMissing        = ClientInput("Image is missing")
	ErrInvalidReference    = ClientInput("Referenced genre or user does not exist")
)

// KindOf returns the kind of err. Errors outside the taxonomy are internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Status maps err to its HTTP status code. Conflicts answer 400.
func Status(err error) int {
	switch KindOf(err) {
	case KindClientInput, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for err.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "Internal server error"
}
