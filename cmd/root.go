// Package cmd builds conductor's cobra command tree.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/conductor/cli"
	"github.com/grovetools/conductor/internal/present"
	"github.com/grovetools/conductor/theme"
	"github.com/grovetools/conductor/version"
)

// NewRootCmd creates the `conductor` command with every subcommand.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"conductor",
		"Inspect and control windows, displays and workspaces of a COSMIC session",
	)
	root.Long = `Conductor connects to the running COSMIC compositor over Wayland, mirrors
its outputs, workspaces and windows, and prints them or changes them.

Examples:
  # list windows on the second display
  conductor toplevels --display HDMI-A-1
  # move workspace 3 to the front of its group
  conductor workspaces move-to-pos 3 1
  # maximize a window by identifier prefix
  conductor toplevels maximize 4f2 --toggle`
	cli.SetVersionTemplate(root, version.GetInfo())
	root.PersistentPreRunE = setup

	root.AddCommand(
		NewToplevelsCmd(),
		NewOutputsCmd(),
		NewWorkspaceGroupsCmd(),
		NewWorkspacesCmd(),
		NewSchemaCmd(),
		NewConfigCmd(),
		skipConfig(cli.NewVersionCommand("conductor")),
	)

	cli.ApplyStyledHelpRecursive(root)
	cli.SetStyledHelpWithExtras(root, environmentHelp)
	return root
}

// Run executes the command tree with args and returns the exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	executed, err := root.ExecuteC()
	if err == nil {
		return cli.ExitSuccess
	}

	verbose, _ := root.PersistentFlags().GetBool("verbose")
	h := cli.NewErrorHandler(verbose)
	h.Out = stderr
	h.JSON = errorFormat(root, executed) != present.FormatHuman
	h.Handle(err)
	return cli.ExitCode(err)
}

// errorFormat is the format resolved for the executed command, or the
// --format flag when setup never ran.
func errorFormat(root, executed *cobra.Command) present.Format {
	if executed != nil && executed.Context() != nil {
		if rt, ok := executed.Context().Value(runtimeKey{}).(*runtime); ok {
			return rt.format
		}
	}
	return cli.GetOptions(root).Format
}

// Execute runs conductor with the process arguments.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

func environmentHelp(w io.Writer, t *theme.Theme) {
	fmt.Fprintln(w, "\n "+t.Header.Render("ENVIRONMENT"))
	for _, env := range [][2]string{
		{"WAYLAND_DISPLAY", "Compositor socket (wayland.display in the config wins)"},
		{"CONDUCTOR_LOG_LEVEL", "Diagnostic log level: debug, info, warn, error"},
		{"CONDUCTOR_THEME", "Color theme: kanagawa, terminal"},
		{"CONDUCTOR_ICONS", "Set to ascii to avoid Nerd Font icons"},
	} {
		fmt.Fprintf(w, " %-20s %s\n", env[0], t.Muted.Render(env[1]))
	}
}
