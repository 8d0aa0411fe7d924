package discovery

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("venue not found in results")

// NotFoundError is returned when a selection targets an id absent from the results.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("venue %q not found in results", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
