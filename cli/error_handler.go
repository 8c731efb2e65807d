package cli

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/theme"
)

// Exit codes.
const (
	ExitSuccess = 0
	// ExitUserError covers unresolvable identifiers, invalid arguments,
	// operations an entity does not allow and bad configuration.
	ExitUserError = 1
	// ExitFailure covers compositor, transport and internal failures.
	ExitFailure = 2
)

// ExitCode maps an error to the process exit status. Errors without a
// code come from argument parsing and count as user errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch code := errors.GetCode(err); code {
	case "", errors.ErrCodeConfigNotFound, errors.ErrCodeConfigInvalid:
		return ExitUserError
	default:
		if errors.IsUserError(err) {
			return ExitUserError
		}
		return ExitFailure
	}
}

// ErrorHandler provides user-friendly error messages.
type ErrorHandler struct {
	Verbose bool
	// JSON prints errors as a JSON document instead of styled text.
	JSON bool
	Out  io.Writer
}

// NewErrorHandler creates an error handler writing to stderr.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints err with a hint for its code and returns it unchanged.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	if h.JSON {
		h.printJSON(err)
		return err
	}

	t := theme.DefaultTheme
	fmt.Fprintf(h.Out, "%s %s\n", t.Error.Render(theme.IconError+" Error:"), message(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintln(h.Out, t.Muted.Render(hint))
	}

	if h.Verbose {
		var ce *errors.ConductorError
		if asConductorError(err, &ce) {
			fmt.Fprintf(h.Out, "\nError details:\n%s\n", ce.ToJSON())
		}
	}
	return err
}

// Hint returns a suggestion for resolving err, or "".
func Hint(err error) string {
	var ce *errors.ConductorError
	asConductorError(err, &ce)

	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound:
		if ce != nil && ce.Details["kind"] == "toplevel" {
			return "Run 'conductor toplevels' to see open windows."
		}
		return "Run 'conductor workspaces' to see workspaces and their displays."
	case errors.ErrCodeAmbiguous:
		return "Narrow the identifier; the message above says how."
	case errors.ErrCodeUnknownDisplay:
		return "Run 'conductor outputs' to see display names."
	case errors.ErrCodeUnsupported:
		return "Run 'conductor workspaces --capabilities' to see what each workspace allows."
	case errors.ErrCodeCapabilityMissing, errors.ErrCodeVersionTooOld:
		return "This needs a newer COSMIC compositor."
	case errors.ErrCodeCapabilityGone:
		return "The compositor withdrew the interface; try again."
	case errors.ErrCodeTransport:
		return "Is a Wayland compositor running? Check WAYLAND_DISPLAY or wayland.display in the config."
	case errors.ErrCodeConvergenceTimeout:
		return "Raise --timeout or convergence.timeout, or set it to 0 to wait without bound."
	case errors.ErrCodeConfigNotFound:
		return "Drop --config to run with the defaults."
	case errors.ErrCodeConfigInvalid:
		return "Run 'conductor schema config' to see the accepted keys."
	case errors.ErrCodeProtocolState, errors.ErrCodeInternal:
		return "Run again with --verbose and report the output."
	}
	return ""
}

func message(err error) string {
	var ce *errors.ConductorError
	if asConductorError(err, &ce) {
		if ce.Cause != nil {
			return fmt.Sprintf("%s: %v", ce.Message, ce.Cause)
		}
		return ce.Message
	}
	return err.Error()
}

func (h *ErrorHandler) printJSON(err error) {
	doc := map[string]interface{}{
		"ok":    false,
		"error": message(err),
	}
	var ce *errors.ConductorError
	if asConductorError(err, &ce) {
		doc["code"] = ce.Code
		if len(ce.Details) > 0 {
			doc["details"] = ce.Details
		}
	}
	data, _ := json.Marshal(doc)
	fmt.Fprintln(h.Out, string(data))
}

func asConductorError(err error, target **errors.ConductorError) bool {
	return stderrors.As(err, target)
}
