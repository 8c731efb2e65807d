package logging

import (
	"context"
	"io"
)

type contextKey string

const outputWriterKey contextKey = "pretty_output_writer"

// GetWriter returns the writer attached to ctx for user-facing output,
// or the global output.
func GetWriter(ctx context.Context) io.Writer {
	if writer, ok := ctx.Value(outputWriterKey).(io.Writer); ok && writer != nil {
		return writer
	}
	return GetGlobalOutput()
}

// WithWriter attaches a writer for user-facing output to ctx.
func WithWriter(ctx context.Context, writer io.Writer) context.Context {
	return context.WithValue(ctx, outputWriterKey, writer)
}
