package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure for the transport layer.
type Kind int

const (
	// KindValidation is bad caller input; nothing was written.
	KindValidation Kind = iota + 1
	// KindNoContent is a successful call with nothing to return.
	KindNoContent
	// KindInternal covers persistence, payload and provider transport faults.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNoContent:
		return "no_content"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is returned by every service operation that fails.
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

func (e *Error) Unwrap() error { return e.Err }

func validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func noContent(msg string, err error) *Error {
	return &Error{Kind: KindNoContent, Message: msg, Err: err}
}

func internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the Kind carried by err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// Caller-facing messages.
const (
	MsgTitleRequired       = "You must provide title in POST request with key named title"
	MsgNoMovieWithTitle    = "No movie with that title"
	MsgProviderPayload     = "Problem with serializing data from external API"
	MsgProviderUnavailable = "Problem with connecting to external API"
	MsgInvalidOrder        = "You can only sort id with order equal to descending"
	MsgCommentFields       = "You must provide comment_body and movie_id in POST request"
	MsgNoMovieWithID       = "No movie with that id"
	MsgCommentNotSaved     = "Problem with saving comment"
	MsgInvalidMovieID      = "movie_id must be a positive integer"
	MsgStoreFailure        = "Problem with the database"
)
