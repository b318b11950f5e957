package library

import (
	"fmt"

	"queenzz/internal/domain"
)

// ErrNoActiveLibrary is returned by transitions on the active library when none is selected
var ErrNoActiveLibrary = &domain.NotFoundError{Resource: "active library"}

func errNotFound(resource, id string) error {
	return domain.NewNotFound(resource, id)
}

func errInvalidMove(format string, args ...any) error {
	return &domain.ValidationError{Message: "invalid move: " + fmt.Sprintf(format, args...)}
}

func errInvalid(format string, args ...any) error {
	return domain.NewValidation(format, args...)
}
