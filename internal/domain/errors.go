package domain

import "errors"

// Kind classifies a failed submission for the caller.
type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindNetwork    Kind = "network"
	KindServer     Kind = "server"
)

// Error is the single user-visible failure of one submission attempt.
// Message is what the customer sees; Err keeps the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Status  int // remote HTTP status, server errors only
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

func ValidationError(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func AuthError(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }

func NetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: "network error: unable to reach booking service", Err: err}
}

func ServerError(status int, msg string) *Error {
	return &Error{Kind: KindServer, Message: msg, Status: status}
}

// KindOf returns the kind of err, or "" when err is not a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// User-facing messages.
const (
	MsgNoRooms         = "no rooms selected"
	MsgNoCredential    = "authentication required: please log in to book a cleaning"
	MsgInvalidIdentity = "invalid user session: please log in again"
)
