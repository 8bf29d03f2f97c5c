package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInUse            = errors.New("resource is in use")

	// ErrNotEntitled carries the exact message the API returns when a
	// customer without a completed order asks for a product's files.
	ErrNotEntitled = errors.New("You don't have this product in your owned products.")
)

// ValidationError reports per-field problems with a request payload.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
