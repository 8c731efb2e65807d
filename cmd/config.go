package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/conductor/config"
	"github.com/grovetools/conductor/internal/present"
	"github.com/grovetools/conductor/logging"
)

// effectiveConfig is the configuration in force after defaults and flags.
type effectiveConfig struct {
	Path        string                   `json:"path,omitempty"`
	Output      config.OutputConfig      `json:"output"`
	Convergence config.ConvergenceConfig `json:"convergence"`
	Wayland     config.WaylandConfig     `json:"wayland"`
	Logging     logging.Config           `json:"logging"`
}

// NewConfigCmd creates the `config` command.
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration in force: the config file, if one was found,
with defaults filled in and --format and --timeout applied.

Config files are searched as conductor.yml, conductor.yaml and conductor.toml
under $XDG_CONFIG_HOME/conductor and then ~/.config/conductor.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := runtimeOf(cmd)
			eff := effectiveConfig{
				Path:        rt.cfg.Path,
				Output:      config.OutputConfig{Format: string(rt.format)},
				Convergence: rt.cfg.Convergence,
				Wayland:     rt.cfg.Wayland,
				Logging:     rt.cfg.Logging(),
			}
			eff.Convergence.Timeout = config.Duration(rt.engine.Timeout)

			w := cmd.OutOrStdout()
			if rt.format != present.FormatHuman {
				return present.Encode(w, rt.format, eff)
			}
			return printConfig(present.HumanPrinter(w), eff)
		},
	}
}

func printConfig(p *present.Printer, eff effectiveConfig) error {
	path := eff.Path
	if path == "" {
		path = "none (defaults)"
	}
	p.Field("File", path)
	p.Struct("Output", func(p *present.Printer) {
		p.Field("Format", eff.Output.Format)
	})
	p.Struct("Convergence", func(p *present.Printer) {
		p.Field("Initial delay", eff.Convergence.InitialDelay)
		p.Field("Max delay", eff.Convergence.MaxDelay)
		if eff.Convergence.Timeout == 0 {
			p.Field("Timeout", "none")
		} else {
			p.Field("Timeout", eff.Convergence.Timeout)
		}
	})
	p.Struct("Wayland", func(p *present.Printer) {
		p.Optional("Display", eff.Wayland.Display)
	})
	p.Struct("Logging", func(p *present.Printer) {
		level := eff.Logging.Level
		if level == "" {
			level = logging.ResolveLevel(eff.Logging).String()
		}
		p.Field("Level", level)
		if eff.Logging.File.Enabled {
			p.Field("File", eff.Logging.File.Path)
		}
	})
	return p.Err()
}
