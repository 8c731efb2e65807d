package errors

import (
	"fmt"
	"time"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *ConductorError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *ConductorError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// NotFound creates an error for an identifier that matched nothing
func NotFound(kind, ident string) *ConductorError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s '%s' does not exist", kind, ident)).
		WithDetail("kind", kind).
		WithDetail("ident", ident)
}

// NotFoundOnDisplay creates an error for a workspace name missing from a display's group
func NotFoundOnDisplay(name, display string) *ConductorError {
	return New(ErrCodeNotFound, fmt.Sprintf("workspace '%s' does not exist on display '%s'", name, display)).
		WithDetail("kind", "workspace").
		WithDetail("ident", name).
		WithDetail("display", display)
}

// Ambiguous creates an error for an identifier that matched more than one entity
func Ambiguous(kind, ident string, matches int, hint string) *ConductorError {
	msg := fmt.Sprintf("%s '%s' is ambiguous: %d matches", kind, ident, matches)
	if hint != "" {
		msg += ". " + hint
	}
	return New(ErrCodeAmbiguous, msg).
		WithDetail("kind", kind).
		WithDetail("ident", ident).
		WithDetail("matches", matches)
}

// UnknownDisplay creates an error for a display name that matches no output
func UnknownDisplay(display string) *ConductorError {
	return New(ErrCodeUnknownDisplay, fmt.Sprintf("unknown display: %s", display)).
		WithDetail("display", display)
}

// CapabilityGone creates an error for a manager global the compositor removed
func CapabilityGone(iface string) *ConductorError {
	return New(ErrCodeCapabilityGone, fmt.Sprintf("%s was removed by the compositor", iface)).
		WithDetail("interface", iface)
}

// CapabilityMissing creates an error for a global the compositor never advertised
func CapabilityMissing(iface string) *ConductorError {
	return New(ErrCodeCapabilityMissing, fmt.Sprintf("compositor does not advertise %s", iface)).
		WithDetail("interface", iface)
}

// Unsupported creates an error for an operation an entity or manager does not allow
func Unsupported(operation, target string) *ConductorError {
	return New(ErrCodeUnsupported, fmt.Sprintf("%s is not supported for %s", operation, target)).
		WithDetail("operation", operation).
		WithDetail("target", target)
}

// VersionTooOld creates an error for a global advertised below the usable version
func VersionTooOld(iface string, advertised, minimum uint32) *ConductorError {
	return New(ErrCodeVersionTooOld,
		fmt.Sprintf("%s version %d is older than the minimum supported version %d", iface, advertised, minimum)).
		WithDetail("interface", iface).
		WithDetail("advertised", advertised).
		WithDetail("minimum", minimum)
}

// ProtocolState creates an error for an entity missing a handle an operation requires
func ProtocolState(format string, args ...interface{}) *ConductorError {
	return New(ErrCodeProtocolState, fmt.Sprintf(format, args...))
}

// InvalidInput creates a validation error
func InvalidInput(format string, args ...interface{}) *ConductorError {
	return New(ErrCodeInvalidInput, fmt.Sprintf(format, args...))
}

// Transport wraps a connection failure
func Transport(err error, op string) *ConductorError {
	return Wrap(err, ErrCodeTransport, fmt.Sprintf("wayland connection failed during %s", op)).
		WithDetail("op", op)
}

// ConvergenceTimeout creates an error for a snapshot that never became complete
func ConvergenceTimeout(timeout time.Duration, pending []string) *ConductorError {
	return New(ErrCodeConvergenceTimeout,
		fmt.Sprintf("compositor state incomplete after %s", timeout)).
		WithDetail("timeout", timeout.String()).
		WithDetail("pending", pending)
}
