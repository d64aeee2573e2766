package task

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an id does not address a task in the list.
	ErrNotFound      = errors.New("task not found")
	ErrInvalidFilter = errors.New("invalid filter")
)

// NotFoundError reports the id that failed to resolve.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", ErrNotFound.Error(), e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
