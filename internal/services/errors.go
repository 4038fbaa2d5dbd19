package services

import (
	"errors"
	"fmt"

	"github.com/Ananth-NQI/portfolio-backend/internal/storage"
)

// ValidationError reports missing or malformed input. Handlers map it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports a missing singleton or by-id row. Handlers map it to 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// AuthError reports bad or missing credentials. Handlers map it to 401.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func notFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// translate turns storage.ErrNotFound into a NotFoundError for resource and
// passes every other error through.
func translate(err error, resource string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(resource)
	}
	return err
}
