package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/grovetools/conductor/internal/command"
	"github.com/grovetools/conductor/internal/present"
)

// NewOutputsCmd creates the `outputs` command.
func NewOutputsCmd() *cobra.Command {
	run := func(cmd *cobra.Command, args []string) error {
		return withLayer(cmd, func(ctx context.Context, l *command.Layer) error {
			snap, err := l.Outputs(ctx)
			if err != nil {
				return err
			}
			return present.Render(cmd.OutOrStdout(), runtimeOf(cmd).format, "Outputs", present.Outputs(snap))
		})
	}

	cmd := &cobra.Command{
		Use:     "outputs",
		Aliases: []string{"o", "output"},
		Short:   "List all monitors with their properties",
		Args:    cobra.NoArgs,
		RunE:    run,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all monitors with their properties",
		Args:  cobra.NoArgs,
		RunE:  run,
	})
	return cmd
}

// NewWorkspaceGroupsCmd creates the `workspace-groups` command.
func NewWorkspaceGroupsCmd() *cobra.Command {
	run := func(cmd *cobra.Command, args []string) error {
		return withLayer(cmd, func(ctx context.Context, l *command.Layer) error {
			snap, err := l.WorkspaceGroups(ctx)
			if err != nil {
				return err
			}
			return present.Render(cmd.OutOrStdout(), runtimeOf(cmd).format, "Workspace Groups", present.WorkspaceGroups(snap))
		})
	}

	cmd := &cobra.Command{
		Use:     "workspace-groups",
		Aliases: []string{"wg"},
		Short:   "List all workspace groups",
		Args:    cobra.NoArgs,
		RunE:    run,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all workspace groups",
		Args:  cobra.NoArgs,
		RunE:  run,
	})
	return cmd
}
