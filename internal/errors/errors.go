package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a NexaScope error code.
type ErrorCode string

const (
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST"  // 400
	ErrSessionLocked   ErrorCode = "SESSION_LOCKED"   // 403
	ErrNotFound        ErrorCode = "NOT_FOUND"        // 404
	ErrSessionExpired  ErrorCode = "SESSION_EXPIRED"  // 410
	ErrInvalidDuration ErrorCode = "INVALID_DURATION" // 422
	ErrInternal        ErrorCode = "INTERNAL"         // 500
)

// DurationHint is shown when a tenure cannot be read.
const DurationHint = "Escribe un tiempo válido (ej: 6 meses, 2 años)."

// ScopeError represents a structured error with code, status, and details.
type ScopeError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ScopeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ScopeError {
	return &ScopeError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidField creates a 400 error naming the offending field and value.
func NewInvalidField(field string, value any, msg string) *ScopeError {
	return &ScopeError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: fmt.Sprintf("%s: %s", field, msg),
		Details: map[string]any{"field": field, "value": value},
	}
}

// NewInvalidDuration creates a 422 error when a tenure expression cannot be normalized.
func NewInvalidDuration(raw string) *ScopeError {
	return &ScopeError{
		Code:    ErrInvalidDuration,
		Status:  422,
		Message: DurationHint,
		Details: map[string]any{"raw": raw},
	}
}

// NewSessionLocked creates a 403 error when the full analysis of a locked session is requested.
func NewSessionLocked(id string) *ScopeError {
	return &ScopeError{
		Code:    ErrSessionLocked,
		Status:  403,
		Message: fmt.Sprintf("session %s is locked; unlock it to see the full analysis", id),
		Details: map[string]any{"session_id": id},
	}
}

// NewNotFound creates a 404 error for when a session cannot be found.
func NewNotFound(id string) *ScopeError {
	return &ScopeError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("session not found: %s", id),
		Details: map[string]any{"session_id": id},
	}
}

// NewSessionExpired creates a 410 error for sessions older than the configured TTL.
func NewSessionExpired(id string) *ScopeError {
	return &ScopeError{
		Code:    ErrSessionExpired,
		Status:  410,
		Message: fmt.Sprintf("session expired: %s", id),
		Details: map[string]any{"session_id": id},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message stays generic; the cause is kept in Details for logging.
func NewInternal(err error) *ScopeError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &ScopeError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if an error (or anything it wraps) is a ScopeError with the given code.
func Is(err error, code ErrorCode) bool {
	var sErr *ScopeError
	if stderrors.As(err, &sErr) {
		return sErr.Code == code
	}
	return false
}
