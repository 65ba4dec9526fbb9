package store

import (
	"errors"
	"fmt"
)

var (
	// ErrRoomNotFound is returned when the referenced room id does not exist,
	// including rooms already destroyed by expiration.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomPinned is returned when deletion is attempted on an official
	// pinned room. Pinned rooms can never be removed.
	ErrRoomPinned = errors.New("official rooms cannot be deleted")

	// ErrNotCreator is returned when the requester is not the room's creator.
	ErrNotCreator = errors.New("only the room creator can delete the room")
)

// ValidationError reports a missing or invalid request field.
type ValidationError struct {
	Field  string
	Reason string // defaults to "is required"
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is required"
	}
	return fmt.Sprintf("%s %s", e.Field, reason)
}
