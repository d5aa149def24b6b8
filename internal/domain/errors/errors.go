// Package errors defines the application error taxonomy exposed to callers.
package errors

import (
	"net/http"

	"supplylink/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Input validation errors
	ErrInvalidCoordinate = NewBaseError(
		http.StatusBadRequest,
		"INVALID_COORDINATE",
		"Latitude or longitude is out of range or not a finite number",
		"",
	)

	ErrInvalidRadius = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ARGUMENT",
		"Search radius must be greater than zero and within the allowed maximum",
		"",
	)

	ErrInvalidLimit = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ARGUMENT",
		"Result limit must not be negative",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Lookup errors
	ErrDealerNotFound = NewBaseError(
		http.StatusNotFound,
		"DEALER_NOT_FOUND",
		"No dealer exists with that ID",
		"",
	)

	ErrShopkeeperNotFound = NewBaseError(
		http.StatusNotFound,
		"SHOPKEEPER_NOT_FOUND",
		"No shopkeeper exists with that ID",
		"",
	)

	ErrConnectionNotFound = NewBaseError(
		http.StatusNotFound,
		"CONNECTION_NOT_FOUND",
		"No connection exists with that ID",
		"",
	)

	// Connection registry errors
	ErrConnectionConflict = NewBaseError(
		http.StatusConflict,
		"CONNECTION_CONFLICT",
		"The shopkeeper already has a pending or active connection",
		"",
	)

	ErrDealerInactive = NewBaseError(
		http.StatusConflict,
		"DEALER_INACTIVE",
		"The dealer is no longer accepting connections",
		"",
	)

	ErrInvalidStateTransition = NewBaseError(
		http.StatusConflict,
		"INVALID_STATE_TRANSITION",
		"The connection state does not permit this transition",
		"",
	)

	ErrNotConnectionParty = NewBaseError(
		http.StatusForbidden,
		"CONNECTION_OWNERSHIP_VIOLATION",
		"You are not a party of this connection",
		"",
	)

	// General errors
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// StoreUnavailableError represents a backing-store failure, implementing the
// AppError interface. The underlying cause is propagated, not swallowed.
type StoreUnavailableError struct {
	err     error
	details string
}

// NewStoreUnavailableError creates a store-related error
func NewStoreUnavailableError(err error, details string) AppError {
	return &StoreUnavailableError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StoreUnavailableError) Error() string {
	return errors.Wrap(e.err, "backing store unavailable").Error()
}

// Unwrap exposes the underlying store error for errors.Is/As checks.
func (e *StoreUnavailableError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *StoreUnavailableError) HTTPCode() int {
	return http.StatusServiceUnavailable
}

// ErrorCode returns the business error code
func (e *StoreUnavailableError) ErrorCode() string {
	return "STORE_UNAVAILABLE"
}

// Message returns the user-friendly error message
func (e *StoreUnavailableError) Message() string {
	return "The backing store is temporarily unavailable"
}

// Details returns detailed error information
func (e *StoreUnavailableError) Details() string {
	return e.details
}
