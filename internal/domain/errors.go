package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) work for wrapped NotFoundErrors.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RecommendationNotFound builds the NotFoundError used by every store.
func RecommendationNotFound(id string) error {
	return &NotFoundError{Resource: "recommendation", ID: id}
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
