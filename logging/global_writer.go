package logging

import (
	"io"
	"os"
	"sync"
)

// globalWriter delegates to a writer that can be swapped at runtime.
type globalWriter struct {
	mu sync.RWMutex
	w  io.Writer
}

func (gw *globalWriter) Write(p []byte) (n int, err error) {
	gw.mu.RLock()
	defer gw.mu.RUnlock()
	return gw.w.Write(p)
}

func (gw *globalWriter) set(w io.Writer) {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	gw.w = w
}

var defaultGlobalWriter = &globalWriter{w: os.Stderr}

// SetGlobalOutput redirects diagnostics and pretty output, stderr by default.
func SetGlobalOutput(w io.Writer) {
	defaultGlobalWriter.set(w)
}

// GetGlobalOutput returns the shared diagnostics writer.
func GetGlobalOutput() io.Writer {
	return defaultGlobalWriter
}
