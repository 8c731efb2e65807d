// Package cli holds the pieces shared by conductor's cobra commands:
// standard flags, styled help, error rendering and exit codes.
package cli

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/conductor/internal/present"
	"github.com/grovetools/conductor/logging"
)

// CommandOptions holds the standard flag values.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	Format     present.Format
	// FormatSet reports whether --format was given explicitly, so the
	// configured default can apply otherwise.
	FormatSet bool
	Timeout   time.Duration
	// TimeoutSet reports whether --timeout was given explicitly.
	TimeoutSet bool
}

// NewStandardCommand creates a command with conductor's persistent flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	format := NewFormatValue(present.FormatHuman)
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().Var(format, "format", "Output format: human, json, pretty-json")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to a conductor.yml or conductor.toml file")
	cmd.PersistentFlags().Duration("timeout", 0, "Give up waiting for compositor state after this long (0 waits without bound)")

	SetStyledHelp(cmd)

	return cmd
}

// GetLogger returns the CLI logger, at debug level when --verbose is set.
func GetLogger(cmd *cobra.Command) *logrus.Entry {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logging.SetLevel(logrus.DebugLevel)
	}
	return logging.NewLogger("cli")
}

// GetOptions extracts the standard flag values from a command.
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	opts := CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		Format:     present.FormatHuman,
		Timeout:    timeout,
	}
	if f := cmd.Flags().Lookup("format"); f != nil {
		if v, ok := f.Value.(*FormatValue); ok {
			opts.Format = v.Format()
		}
		opts.FormatSet = f.Changed
	}
	if f := cmd.Flags().Lookup("timeout"); f != nil {
		opts.TimeoutSet = f.Changed
	}
	return opts
}
