package utils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrNotFound marks a referenced team or entity that does not exist.
var ErrNotFound = errors.New("not found")

// CapacityError is returned when a join would exceed the team's member limit.
type CapacityError struct {
	TeamID     string
	MaxMembers int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("team %s is full (max %d members)", e.TeamID, e.MaxMembers)
}

// StoreError wraps a failed record or blob store operation. Store failures
// are never retried; they surface to the caller as-is.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// StatusForError maps the error taxonomy to HTTP status codes. Anything
// unrecognized is treated as a store/transport failure.
func StatusForError(err error) int {
	var capErr *CapacityError
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &capErr):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
