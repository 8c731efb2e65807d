package cli

import (
	"github.com/grovetools/conductor/internal/present"
)

// FormatValue is a pflag.Value accepting only known output formats.
type FormatValue struct {
	format present.Format
}

// NewFormatValue returns a FormatValue holding def.
func NewFormatValue(def present.Format) *FormatValue {
	return &FormatValue{format: def}
}

func (v *FormatValue) String() string { return string(v.format) }

// Set implements pflag.Value.
func (v *FormatValue) Set(s string) error {
	f, err := present.ParseFormat(s)
	if err != nil {
		return err
	}
	v.format = f
	return nil
}

// Type implements pflag.Value.
func (v *FormatValue) Type() string { return "format" }

// Format returns the selected format.
func (v *FormatValue) Format() present.Format { return v.format }
