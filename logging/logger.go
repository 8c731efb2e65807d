package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/conductor/pkg/paths"
)

// DefaultLevel is used when neither CONDUCTOR_LOG_LEVEL nor the config
// names a level.
const DefaultLevel = logrus.WarnLevel

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
	active    Config
	levelOver *logrus.Level
	fileSink  io.WriteCloser
)

// NewLogger returns the logger for a component, creating it on first use.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()
	apply(logger)
	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// Configure installs cfg and re-applies it to every logger created so far.
func Configure(cfg Config) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if fileSink != nil {
		fileSink.Close()
		fileSink = nil
	}
	active = cfg
	if cfg.File.Enabled {
		path := paths.Expand(cfg.File.Path)
		if path == "" {
			path = paths.DefaultLogFile()
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				fileSink = f
			}
		}
	}
	for _, entry := range loggers {
		apply(entry.Logger)
	}
}

// SetLevel forces a level for all loggers, taking precedence over the
// environment and the config. The --verbose flag uses it.
func SetLevel(level logrus.Level) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	levelOver = &level
	for _, entry := range loggers {
		apply(entry.Logger)
	}
}

// ResolveLevel picks the effective level: an explicit override, then
// CONDUCTOR_LOG_LEVEL, then the configured level, then DefaultLevel.
func ResolveLevel(cfg Config) logrus.Level {
	if levelOver != nil {
		return *levelOver
	}
	levelStr := cfg.Level
	if env := os.Getenv("CONDUCTOR_LOG_LEVEL"); env != "" {
		levelStr = env
	}
	if levelStr == "" {
		return DefaultLevel
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return DefaultLevel
	}
	return level
}

// apply configures logger from the active config. Callers hold loggersMu.
func apply(logger *logrus.Logger) {
	cfg := active
	logger.SetLevel(ResolveLevel(cfg))
	logger.SetReportCaller(os.Getenv("CONDUCTOR_LOG_CALLER") == "true" || cfg.ReportCaller)

	switch cfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: cfg.Format})
	}

	var writers []io.Writer
	if fileSink != nil {
		writers = append(writers, fileSink)
	}
	if structuredToStderr(cfg.Format.StructuredToStderr, logger.GetLevel()) {
		writers = append(writers, GetGlobalOutput())
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}
}

// structuredToStderr reports whether structured entries go to stderr. In
// auto mode they do when debugging or when stderr is not a terminal.
func structuredToStderr(mode string, level logrus.Level) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if level >= logrus.DebugLevel {
		return true
	}
	fd := os.Stderr.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}
