package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/conductor/internal/present"
	"github.com/grovetools/conductor/version"
)

// SetVersionTemplate makes `--version` print the build details.
func SetVersionTemplate(cmd *cobra.Command, info version.Info) {
	cmd.Version = info.Version
	cmd.SetVersionTemplate(fmt.Sprintf(`{{.Name}} {{.Version}}
  Commit:    %s
  Built:     %s
  Platform:  %s
`, info.Commit, info.BuildDate, info.Platform))
}

// NewVersionCommand creates the `version` command.
func NewVersionCommand(componentName string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Print the version of %s", componentName),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			opts := GetOptions(cmd)
			w := cmd.OutOrStdout()
			if opts.Format != present.FormatHuman {
				return present.Encode(w, opts.Format, info)
			}
			p := present.HumanPrinter(w)
			p.Field(componentName, info.Version)
			p.Field("Commit", info.Commit)
			if info.Modified {
				p.Field("Modified", true)
			}
			p.Field("Built", info.BuildDate)
			p.Field("Go", info.GoVersion)
			p.Field("Platform", info.Platform)
			return p.Err()
		},
	}
}
