package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLoggers(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		loggersMu.Lock()
		loggers = make(map[string]*logrus.Entry)
		active = Config{}
		levelOver = nil
		loggersMu.Unlock()
		SetGlobalOutput(os.Stderr)
	})
}

func TestNewLoggerIsCachedPerComponent(t *testing.T) {
	resetLoggers(t)
	a := NewLogger("transport")
	b := NewLogger("transport")
	assert.Same(t, a, b)
	assert.Equal(t, "transport", a.Data["component"])
}

func TestResolveLevel(t *testing.T) {
	resetLoggers(t)

	t.Setenv("CONDUCTOR_LOG_LEVEL", "")
	assert.Equal(t, logrus.WarnLevel, ResolveLevel(Config{}))
	assert.Equal(t, logrus.InfoLevel, ResolveLevel(Config{Level: "info"}))
	assert.Equal(t, logrus.WarnLevel, ResolveLevel(Config{Level: "loud"}))

	t.Setenv("CONDUCTOR_LOG_LEVEL", "debug")
	assert.Equal(t, logrus.DebugLevel, ResolveLevel(Config{Level: "error"}))

	levelOver = new(logrus.Level)
	*levelOver = logrus.ErrorLevel
	assert.Equal(t, logrus.ErrorLevel, ResolveLevel(Config{}))
}

func TestConfigureReappliesToExistingLoggers(t *testing.T) {
	resetLoggers(t)
	t.Setenv("CONDUCTOR_LOG_LEVEL", "")

	var buf bytes.Buffer
	SetGlobalOutput(&buf)

	log := NewLogger("store")
	assert.Equal(t, logrus.WarnLevel, log.Logger.GetLevel())

	Configure(Config{Level: "info", Format: FormatConfig{Preset: "simple", StructuredToStderr: "always"}})
	assert.Equal(t, logrus.InfoLevel, log.Logger.GetLevel())

	log.WithField("id", 7).Info("output settled")
	assert.Equal(t, "[INFO] output settled id=7\n", buf.String())
}

func TestStructuredToStderrModes(t *testing.T) {
	assert.True(t, structuredToStderr("always", logrus.ErrorLevel))
	assert.False(t, structuredToStderr("never", logrus.DebugLevel))
	assert.True(t, structuredToStderr("auto", logrus.DebugLevel))
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{DisableTimestamp: true},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "event for unknown object",
				Data: logrus.Fields{
					"component": "applier",
					"object":    42,
				},
			},
			want:    []string{"[WARN]", "applier", "event for unknown object", "object=42"},
			notWant: []string{"component="},
		},
		{
			name:   "pretty fields are hidden",
			config: FormatConfig{DisableTimestamp: true, DisableComponent: true},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "moved",
				Data:    logrus.Fields{"component": "command", "pretty_text": "moved"},
			},
			want:    []string{"[INFO] moved"},
			notWant: []string{"pretty_text", "command"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &TextFormatter{Config: tt.config}
			out, err := f.Format(tt.entry)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, string(out), w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, string(out), nw)
			}
		})
	}
}

func TestTextFormatterSortsFields(t *testing.T) {
	f := &TextFormatter{Config: FormatConfig{DisableTimestamp: true, DisableComponent: true}}
	out, err := f.Format(&logrus.Entry{
		Level:   logrus.InfoLevel,
		Message: "m",
		Data:    logrus.Fields{"b": 2, "a": 1, "c": 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "[INFO] m a=1 b=2 c=3\n", string(out))
}
