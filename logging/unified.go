package logging

import (
	"context"
	"fmt"
	"regexp"
	"runtime"

	"github.com/grovetools/conductor/theme"
	"github.com/sirupsen/logrus"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// UnifiedLogger writes each entry twice: a styled line for the user on the
// context writer and a structured entry on the component logger.
type UnifiedLogger struct {
	component  string
	structured *logrus.Entry
}

// NewUnifiedLogger creates a unified logger for a component.
func NewUnifiedLogger(component string) *UnifiedLogger {
	return &UnifiedLogger{
		component:  component,
		structured: NewLogger(component),
	}
}

func (u *UnifiedLogger) entry(msg string, level logrus.Level, icon string, fields logrus.Fields) *LogEntry {
	return &LogEntry{logger: u, msg: msg, level: level, icon: icon, fields: fields}
}

// Debug returns a LogEntry at DEBUG level. Its pretty line is only shown
// when the component logger is at debug level.
func (u *UnifiedLogger) Debug(msg string) *LogEntry {
	return u.entry(msg, logrus.DebugLevel, "", logrus.Fields{})
}

// Info returns a LogEntry at INFO level.
func (u *UnifiedLogger) Info(msg string) *LogEntry {
	return u.entry(msg, logrus.InfoLevel, "", logrus.Fields{})
}

// Warn returns a LogEntry at WARN level.
func (u *UnifiedLogger) Warn(msg string) *LogEntry {
	return u.entry(msg, logrus.WarnLevel, theme.IconWarning, logrus.Fields{})
}

// Error returns a LogEntry at ERROR level.
func (u *UnifiedLogger) Error(msg string) *LogEntry {
	return u.entry(msg, logrus.ErrorLevel, theme.IconError, logrus.Fields{})
}

// Success returns an INFO entry tagged status=success.
func (u *UnifiedLogger) Success(msg string) *LogEntry {
	return u.entry(msg, logrus.InfoLevel, theme.IconSuccess, logrus.Fields{"status": "success"})
}

// LogEntry accumulates options until Log is called.
type LogEntry struct {
	logger     *UnifiedLogger
	msg        string
	level      logrus.Level
	fields     logrus.Fields
	icon       string
	prettyMsg  string
	prettyOnly bool
	structOnly bool
	noIcon     bool
}

// Field adds a structured field.
func (e *LogEntry) Field(key string, value interface{}) *LogEntry {
	e.fields[key] = value
	return e
}

// Fields adds several structured fields.
func (e *LogEntry) Fields(fields map[string]interface{}) *LogEntry {
	for k, v := range fields {
		e.fields[k] = v
	}
	return e
}

// Err attaches an error as the "error" field.
func (e *LogEntry) Err(err error) *LogEntry {
	if err != nil {
		e.fields["error"] = err.Error()
	}
	return e
}

// NoIcon suppresses the icon in pretty output.
func (e *LogEntry) NoIcon() *LogEntry {
	e.noIcon = true
	return e
}

// Pretty replaces the styled user-facing line. The structured entry keeps
// the plain message.
func (e *LogEntry) Pretty(styled string) *LogEntry {
	e.prettyMsg = styled
	return e
}

// PrettyOnly skips structured output.
func (e *LogEntry) PrettyOnly() *LogEntry {
	e.prettyOnly = true
	return e
}

// StructuredOnly skips pretty output.
func (e *LogEntry) StructuredOnly() *LogEntry {
	e.structOnly = true
	return e
}

// Log writes the entry.
func (e *LogEntry) Log(ctx context.Context) {
	prettyOutput := e.computePrettyOutput()

	if !e.structOnly && (e.level < logrus.DebugLevel || e.logger.structured.Logger.IsLevelEnabled(e.level)) {
		fmt.Fprintln(GetWriter(ctx), prettyOutput)
	}
	if !e.prettyOnly {
		e.logStructured(prettyOutput)
	}
}

func (e *LogEntry) computePrettyOutput() string {
	if e.prettyMsg != "" {
		return e.prettyMsg
	}
	output := e.msg
	if !e.noIcon && e.icon != "" {
		output = e.icon + " " + e.msg
	}

	t := theme.DefaultTheme
	switch e.level {
	case logrus.WarnLevel:
		return t.Warning.Render(output)
	case logrus.ErrorLevel:
		return t.Error.Render(output)
	case logrus.DebugLevel:
		return t.Muted.Render(output)
	}
	if e.fields["status"] == "success" {
		return t.Success.Render(output)
	}
	return output
}

func (e *LogEntry) logStructured(prettyOutput string) {
	// skip: 0=logStructured, 1=Log, 2=call site
	if pc, file, line, ok := runtime.Caller(2); ok {
		funcName := ""
		if fn := runtime.FuncForPC(pc); fn != nil {
			funcName = fn.Name()
		}
		e.fields["file"] = fmt.Sprintf("%s:%d", file, line)
		e.fields["func"] = funcName
	}
	e.fields["pretty_text"] = ansiRegex.ReplaceAllString(prettyOutput, "")

	e.logger.structured.WithFields(e.fields).Log(e.level, e.msg)
}

// Component returns the component name.
func (u *UnifiedLogger) Component() string {
	return u.component
}

// WithStructured returns the underlying logrus entry.
func (u *UnifiedLogger) WithStructured() *logrus.Entry {
	return u.structured
}
