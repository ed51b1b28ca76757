// Package errors defines the typed failure taxonomy of the authentication
// service. Failures are returned as values and translated at the delivery
// boundary; nothing here is ever thrown past the service layer.
package errors

import (
	"net/http"

	"passgate/internal/errors"
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

// Authentication failures. ErrInvalidCredentials deliberately carries one
// generic message for unknown-username and wrong-password alike, so callers
// cannot enumerate accounts. Taken-failures and policy failures are public
// uniqueness facts and stay distinct.
var (
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid username or password",
		"",
	)

	ErrUsernameTaken = NewBaseError(
		http.StatusConflict,
		"USERNAME_TAKEN",
		"username is taken",
		"",
	)

	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"email already registered",
		"",
	)

	ErrUsernameAndEmailTaken = NewBaseError(
		http.StatusConflict,
		"USERNAME_EMAIL_TAKEN",
		"username and email already registered",
		"",
	)

	ErrWeakPassword = NewBaseError(
		http.StatusBadRequest,
		"WEAK_PASSWORD",
		"password does not meet the minimum policy",
		"",
	)

	ErrRateLimited = NewBaseError(
		http.StatusTooManyRequests,
		"RATE_LIMITED",
		"too many failed attempts, try again later",
		"",
	)
)

// Token failures, mirrored one-to-one from the issuer's verification outcomes.
var (
	ErrTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
		"session token has expired",
		"",
	)

	ErrInvalidSignature = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_SIGNATURE_INVALID",
		"session token signature is invalid",
		"",
	)

	ErrTokenMalformed = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_MALFORMED",
		"session token is malformed",
		"",
	)
)

// Infrastructure failures.
var (
	ErrCorruptHash = NewBaseError(
		http.StatusInternalServerError,
		"CORRUPT_HASH",
		"stored credential is unreadable",
		"",
	)

	ErrHasherTimeout = NewBaseError(
		http.StatusServiceUnavailable,
		"HASHER_TIMEOUT",
		"password processing timed out",
		"",
	)
)

// StoreUnavailableError wraps a persistence failure. It is the only failure
// kind a caller may treat as transient and retry.
type StoreUnavailableError struct {
	err     error
	details string
}

// NewStoreUnavailableError creates a store-level error
func NewStoreUnavailableError(err error, details string) AppError {
	return &StoreUnavailableError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StoreUnavailableError) Error() string {
	return errors.Wrap(e.err, "credential store unavailable").Error()
}

// Unwrap exposes the underlying persistence error.
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
	return "service temporarily unavailable"
}

// Details returns detailed error information
func (e *StoreUnavailableError) Details() string {
	return e.details
}
