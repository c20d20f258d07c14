// Package errors provides standardized error handling for the edge renderer.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a standardized error code for the edge renderer.
type ErrorCode string

const (
	// Data errors
	VS_DATA_UNAVAILABLE ErrorCode = "VS_DATA_UNAVAILABLE" // Store fetch returned absent (status, content type, parse or transport)
	VS_NOT_FOUND        ErrorCode = "VS_NOT_FOUND"        // Resolved id/shard/page does not exist

	// Request errors
	VS_INVALID_QUERY ErrorCode = "VS_INVALID_QUERY" // Search query too short or empty after normalization
	VS_BAD_REQUEST   ErrorCode = "VS_BAD_REQUEST"   // Malformed request

	// Server errors
	VS_INTERNAL ErrorCode = "VS_INTERNAL" // Internal server error
)

// Error represents a standardized error carrying its rendered HTTP status.
type Error struct {
	Code          ErrorCode `json:"code"`
	Message       string    `json:"message"`
	CorrelationID string    `json:"correlationId"`
	HTTPStatus    int       `json:"-"`
}

// New creates a new Error with the specified code and message.
func New(code ErrorCode, message string, correlationID string) *Error {
	return &Error{
		Code:          code,
		Message:       message,
		CorrelationID: correlationID,
		HTTPStatus:    httpStatusCodeForCode(code),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// httpStatusCodeForCode maps error codes to HTTP status codes.
// VS_DATA_UNAVAILABLE and VS_NOT_FOUND deliberately map to the same status:
// the rendering layer treats missing and malformed data identically.
// VS_INVALID_QUERY renders as an inline prompt with a success status.
func httpStatusCodeForCode(code ErrorCode) int {
	switch code {
	case VS_DATA_UNAVAILABLE, VS_NOT_FOUND:
		return http.StatusNotFound
	case VS_INVALID_QUERY:
		return http.StatusOK
	case VS_BAD_REQUEST:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
