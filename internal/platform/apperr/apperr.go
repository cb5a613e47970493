// Copyright (c) 2026 Residents Book. All rights reserved.

/*
Package apperr defines the centralized error handling framework for Residents Book.

It provides a rich error type that bridges the gap between upstream API failures,
local form checks, and the user-facing notifications rendered by the web layer.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Taxonomy: NETWORK_ERROR, SERVER_ERROR, VALIDATION_ERROR, NOT_FOUND and
    CLIENT_VALIDATION_ERROR (never reaches the network).
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the API client or a domain component should be an
[AppError] so the presentation layer can decide how to surface it.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Codes

const (
	CodeNetwork          = "NETWORK_ERROR"
	CodeServer           = "SERVER_ERROR"
	CodeValidation       = "VALIDATION_ERROR"
	CodeClientValidation = "CLIENT_VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL_ERROR"
)

// AppError is the canonical error type for Residents Book.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never shown to users.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "NETWORK_ERROR").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to the user.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the form field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Resident") // Returns "Resident not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Conflict creates a 409 [AppError], used when an action is already in flight.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] for input rejected by the upstream
// service. The message is the one provided by the server.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// ClientValidation creates a 422 [AppError] for local pre-submission checks.
func ClientValidation(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeClientValidation,
		Message:    msg,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Upstream Errors (5xx)

// Network creates a 502 [AppError] for a transport failure where no response
// was received from the upstream service.
func Network(cause error) *AppError {
	return &AppError{
		Code:       CodeNetwork,
		Message:    "Unable to reach the residents service",
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// Server creates a 502 [AppError] for a non-2xx upstream response that
// carried no structured message.
func Server(status int) *AppError {
	return &AppError{
		Code:       CodeServer,
		Message:    "Something went wrong",
		HTTPStatus: http.StatusBadGateway,
		Cause:      fmt.Errorf("upstream responded with status %d", status),
	}
}

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never shown to the user.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}

// UserMessage returns the message to show for err, or fallback when err is
// not an [*AppError] or its message is empty.
func UserMessage(err error, fallback string) string {
	ae := As(err)
	if ae == nil || ae.Message == "" {
		return fallback
	}
	return ae.Message
}
