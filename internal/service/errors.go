package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when the caller is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPermissionDenied is returned when the caller lacks permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidPayload is returned when a snapshot payload cannot be decoded
	ErrInvalidPayload = errors.New("invalid snapshot payload")

	// ErrWarehouseDisabled is returned when a warehouse operation is requested
	// but no warehouse connection is configured
	ErrWarehouseDisabled = errors.New("pricing warehouse not enabled")
)
