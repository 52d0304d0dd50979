package searchapi

import (
	"errors"
	"fmt"
)

var (
	ErrTimeout     = errors.New("search api timeout")
	ErrConnection  = errors.New("search api connection error")
	ErrBadRequest  = errors.New("search api bad request")
	ErrForbidden   = errors.New("search api forbidden")
	ErrNotFound    = errors.New("search api resource not found")
	ErrBadResponse = errors.New("search api bad response")
)

// Error is returned by every failed call. Cause is one of the sentinel
// errors above.
type Error struct {
	Cause      error
	Message    string
	StatusCode int
	Endpoint   string
	RequestID  string
}

func (e *Error) Error() string {
	msg := e.Cause.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status: %d, endpoint: `%s`)", msg, e.StatusCode, e.Endpoint)
	}
	return fmt.Sprintf("%s (endpoint: `%s`)", msg, e.Endpoint)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
