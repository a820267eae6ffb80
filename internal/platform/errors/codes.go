// Package errors provides structured, coded errors shared across packages.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeInvalidArgument marks malformed input from a caller.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// Session errors
	CodeSessionNotFound     Code = "SESSION_NOT_FOUND"
	CodeGameAlreadyFinished Code = "GAME_ALREADY_FINISHED"

	// Move errors
	CodeIllegalMove Code = "ILLEGAL_MOVE"

	// CodeResourceExhausted marks a caller that exceeded a rate limit.
	CodeResourceExhausted Code = "RESOURCE_EXHAUSTED"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidArgument, CodeIllegalMove:
		return http.StatusBadRequest
	case CodeSessionNotFound:
		return http.StatusNotFound
	case CodeGameAlreadyFinished:
		return http.StatusConflict
	case CodeResourceExhausted:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Recoverable reports whether the caller can continue the protocol after
// receiving this code without starting over.
func (c Code) Recoverable() bool {
	switch c {
	case CodeIllegalMove, CodeGameAlreadyFinished, CodeInvalidArgument:
		return true
	default:
		return false
	}
}
