// Package present renders listings as a human-readable tree or as JSON.
package present

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	conductorerrors "github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/theme"
)

// Format selects the output encoding.
type Format string

const (
	FormatHuman      Format = "human"
	FormatJSON       Format = "json"
	FormatPrettyJSON Format = "pretty-json"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatHuman, FormatJSON, FormatPrettyJSON}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", conductorerrors.InvalidInput("unknown output format %q (want human, json or pretty-json)", s)
}

// Printable is a view that can print itself as a tree.
type Printable interface {
	PrintHuman(p *Printer)
}

// Render writes items under title in format f.
func Render[T Printable](w io.Writer, f Format, title string, items []T) error {
	switch f {
	case FormatJSON, FormatPrettyJSON:
		return Encode(w, f, items)
	}
	p := HumanPrinter(w)
	p.Structs(title, len(items), func(i int, p *Printer) { items[i].PrintHuman(p) })
	return p.Err()
}

// Encode writes v as one JSON document. Non-JSON formats fall back to
// pretty JSON.
func Encode(w io.Writer, f Format, v any) error {
	enc := json.NewEncoder(w)
	if f != FormatJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// HumanPrinter returns a Printer whose labels are styled when w is a
// terminal.
func HumanPrinter(w io.Writer) *Printer {
	p := NewPrinter(w)
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return p
	}
	r := lipgloss.NewRenderer(f, termenv.WithProfile(termenv.EnvColorProfile()))
	return p.WithLabelStyle(r.NewStyle().Foreground(theme.DefaultTheme.Colors.Cyan))
}

// Message prints a one-line result of a mutation in the human format,
// or {"ok": true, ...} in JSON.
func Message(w io.Writer, f Format, msg string, fields map[string]any) error {
	if f == FormatHuman {
		_, err := fmt.Fprintln(w, msg)
		return err
	}
	doc := map[string]any{"ok": true, "message": msg}
	for k, v := range fields {
		doc[k] = v
	}
	return Encode(w, f, doc)
}
