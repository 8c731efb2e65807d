package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	indentUnit = "  "
	none       = "none"
)

// Printer writes an indented tree of fields, nested structs and lists.
// The first write error sticks and is returned by Err.
type Printer struct {
	w      io.Writer
	indent string
	label  func(string) string
	err    error
}

// NewPrinter returns a Printer writing plain text to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, label: func(s string) string { return s }}
}

// WithLabelStyle renders field labels with style.
func (p *Printer) WithLabelStyle(style lipgloss.Style) *Printer {
	p.label = func(s string) string { return style.Render(s) }
	return p
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Err returns the first write error.
func (p *Printer) Err() error { return p.err }

func (p *Printer) child() *Printer {
	return &Printer{w: p.w, indent: p.indent + indentUnit, label: p.label, err: p.err}
}

func (p *Printer) adopt(c *Printer) {
	if p.err == nil {
		p.err = c.err
	}
}

// Field prints "name: value".
func (p *Printer) Field(name string, value any) {
	p.printf("%s%s: %v\n", p.indent, p.label(name), value)
}

// Optional prints a field unless value is empty.
func (p *Printer) Optional(name, value string) {
	if value != "" {
		p.Field(name, value)
	}
}

// Struct prints name on its own line and the fields written by fn one
// level deeper.
func (p *Printer) Struct(name string, fn func(*Printer)) {
	p.printf("%s%s\n", p.indent, p.label(name))
	c := p.child()
	fn(c)
	p.adopt(c)
}

// List prints items numbered from 1, one per line.
func (p *Printer) List(name string, items []string) {
	if len(items) == 0 {
		p.Field(name, none)
		return
	}
	p.printf("%s%s:\n", p.indent, p.label(name))
	c := p.child()
	for i, item := range items {
		c.printf("%s%d: %s\n", c.indent, i+1, item)
	}
	p.adopt(c)
}

// InlineList prints items comma separated on one line.
func (p *Printer) InlineList(name string, items []string) {
	if len(items) == 0 {
		p.Field(name, none)
		return
	}
	p.printf("%s%s: %s\n", p.indent, p.label(name), strings.Join(items, ", "))
}

// Structs prints a numbered list of n structs, each followed by a blank
// line.
func (p *Printer) Structs(name string, n int, fn func(i int, p *Printer)) {
	p.printf("%s%s:\n", p.indent, p.label(name))
	c := p.child()
	for i := range n {
		c.printf("%s%d:\n", c.indent, i+1)
		item := c.child()
		fn(i, item)
		c.adopt(item)
		c.printf("\n")
	}
	p.adopt(c)
}
