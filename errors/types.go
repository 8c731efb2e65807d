package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Resolution errors
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeAmbiguous      ErrorCode = "AMBIGUOUS"
	ErrCodeUnknownDisplay ErrorCode = "UNKNOWN_DISPLAY"

	// Capability errors
	ErrCodeCapabilityGone    ErrorCode = "CAPABILITY_GONE"
	ErrCodeCapabilityMissing ErrorCode = "CAPABILITY_MISSING"
	ErrCodeUnsupported       ErrorCode = "UNSUPPORTED"
	ErrCodeVersionTooOld     ErrorCode = "VERSION_TOO_OLD"

	// Connection errors
	ErrCodeTransport          ErrorCode = "TRANSPORT"
	ErrCodeConvergenceTimeout ErrorCode = "CONVERGENCE_TIMEOUT"

	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// General errors
	ErrCodeProtocolState ErrorCode = "PROTOCOL_STATE"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
)

// ConductorError represents a structured error with context
type ConductorError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *ConductorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ConductorError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *ConductorError) WithDetail(key string, value interface{}) *ConductorError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *ConductorError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new ConductorError
func New(code ErrorCode, message string) *ConductorError {
	return &ConductorError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ConductorError
func Wrap(err error, code ErrorCode, message string) *ConductorError {
	return &ConductorError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific ConductorError code
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	cerr, ok := err.(*ConductorError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return cerr.Code
}

// IsUserError reports whether the error was caused by the caller's input
// (an unresolvable identifier or invalid arguments) rather than by the
// compositor or by a broken internal invariant.
func IsUserError(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodeAmbiguous, ErrCodeUnknownDisplay, ErrCodeInvalidInput, ErrCodeUnsupported:
		return true
	}
	return false
}
