package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)
	ErrSheetNotFound   = fmt.Errorf("%w: sheet", ErrNotFound)
	ErrRowNotFound     = fmt.Errorf("%w: row", ErrNotFound)

	// Mapping and selection errors
	ErrMissingRoles  = errors.New("required roles are not mapped")
	ErrUnknownRole   = errors.New("unknown role")
	ErrUnknownColumn = errors.New("column not present in table")
	ErrInvalidChoice = errors.New("choice not among available options")

	// Load errors
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyTable        = errors.New("table has no data rows")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewMissingRolesError(roles []string) error {
	return fmt.Errorf("%w: %v", ErrMissingRoles, roles)
}

func NewInvalidChoiceError(role, value string) error {
	return fmt.Errorf("%w: %q for role %s", ErrInvalidChoice, value, role)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsMappingError(err error) bool {
	return errors.Is(err, ErrMissingRoles) ||
		errors.Is(err, ErrUnknownRole) ||
		errors.Is(err, ErrUnknownColumn)
}
