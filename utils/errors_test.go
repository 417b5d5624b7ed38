package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, fiber.StatusNotFound},
		{"wrapped not found", fmt.Errorf("team x: %w", ErrNotFound), fiber.StatusNotFound},
		{"capacity", &CapacityError{TeamID: "T1", MaxMembers: 3}, fiber.StatusConflict},
		{"wrapped capacity", fmt.Errorf("join: %w", &CapacityError{TeamID: "T1", MaxMembers: 3}), fiber.StatusConflict},
		{"store", &StoreError{Op: "put", Err: errors.New("disk full")}, fiber.StatusInternalServerError},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusForError(tt.err); got != tt.want {
			t.Errorf("%s: StatusForError = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestStoreErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &StoreError{Op: "list", Err: cause}

	if !errors.Is(err, cause) {
		t.Fatal("StoreError does not unwrap to its cause")
	}
	if msg := err.Error(); msg != "store: list: connection refused" {
		t.Fatalf("Error() = %q", msg)
	}
}

func TestCapacityErrorMessage(t *testing.T) {
	err := &CapacityError{TeamID: "T1", MaxMembers: 4}
	if msg := err.Error(); msg != "team T1 is full (max 4 members)" {
		t.Fatalf("Error() = %q", msg)
	}
}
