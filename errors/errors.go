package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState   = fmt.Errorf("invalid state")
	ErrMalformedEvent = fmt.Errorf("malformed event")
	ErrNotStarted     = fmt.Errorf("not started")
	ErrInvalidOptions = fmt.Errorf("invalid options")
	ErrUnauthorized   = fmt.Errorf("unauthorized")
	ErrRoomMismatch   = fmt.Errorf("api key is not valid for this room")
	ErrConfigFetch    = fmt.Errorf("remote config fetch failed")
	ErrChannelClosed  = fmt.Errorf("realtime channel closed")
	ErrWorkerPanic    = fmt.Errorf("worker panic")
	ErrEmptyWords     = fmt.Errorf("no words have been found")
	ErrSceneFull      = fmt.Errorf("scene is full")
	ErrUnknownAvatar  = fmt.Errorf("no such avatar in the scene")
)

// MalformedEventError describes a realtime event that could not be turned into a participant.
// It is recovered locally: the event is dropped and logged.
type MalformedEventError struct {
	Kind     string
	ClientID string
	Reason   string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("%s: %s event from %q: %s", ErrMalformedEvent, e.Kind, e.ClientID, e.Reason)
}

func (e *MalformedEventError) Unwrap() error {
	return ErrMalformedEvent
}

// Is, As and Join are re-exported so callers importing this package under its
// natural name keep access to the standard helpers.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Join(errs ...error) error {
	return errors.Join(errs...)
}
