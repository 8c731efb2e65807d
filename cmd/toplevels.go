package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/conductor/internal/command"
	"github.com/grovetools/conductor/internal/present"
	"github.com/grovetools/conductor/internal/store"
)

// NewToplevelsCmd creates the `toplevels` command.
func NewToplevelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "toplevels",
		Aliases: []string{"t", "wi", "window"},
		Short:   "List all windows with their properties",
		Long: `List all windows with their properties, or change one of them.

Windows are addressed by a prefix of their unique identifier, as printed
by the listing.

Examples:
  conductor toplevels --workspace 2 --display DP-1
  conductor toplevels --app-id 'org.mozilla.*'
  conductor toplevels fullscreen 4f2 --unset`,
		Args: cobra.NoArgs,
	}
	filter := addFilterFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return listToplevels(cmd, *filter)
	}

	cmd.AddCommand(
		newToplevelListCmd(),
		newToplevelStateCmd("maximize", "Maximize or restore a window", store.StateMaximized),
		newToplevelStateCmd("minimize", "Minimize or restore a window", store.StateMinimized),
		newToplevelStateCmd("fullscreen", "Make a window fullscreen or leave fullscreen", store.StateFullscreen),
		newToplevelStateCmd("sticky", "Show a window on every workspace, or only its own", store.StateSticky),
		newToplevelActivateCmd(),
		newToplevelCloseCmd(),
		newToplevelMoveToWorkspaceCmd(),
	)
	return cmd
}

func addFilterFlags(cmd *cobra.Command) *command.Filter {
	f := &command.Filter{}
	cmd.Flags().StringVarP(&f.Workspace, "workspace", "w", "", "Only windows on this workspace")
	cmd.Flags().StringVarP(&f.Display, "display", "d", "", "Only windows on this display, or the display of --workspace")
	cmd.Flags().StringVar(&f.AppID, "app-id", "", "Only windows whose app id matches this glob")
	return f
}

func newToplevelListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all toplevels",
		Args:  cobra.NoArgs,
	}
	filter := addFilterFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return listToplevels(cmd, *filter)
	}
	return cmd
}

func listToplevels(cmd *cobra.Command, f command.Filter) error {
	return withLayer(cmd, func(ctx context.Context, l *command.Layer) error {
		snap, err := l.Toplevels(ctx, f)
		if err != nil {
			return err
		}
		return present.Render(cmd.OutOrStdout(), runtimeOf(cmd).format, "Toplevels", present.Toplevels(snap))
	})
}

func newToplevelStateCmd(use, short string, flag store.ToplevelState) *cobra.Command {
	var set, unset, toggle bool
	cmd := &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Long:  short + ".\n\nWithout a flag the state is set.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := command.ParseStateOp(set, unset, toggle)
			if err != nil {
				return err
			}
			return withLayer(cmd, func(ctx context.Context, l *command.Layer) error {
				if err := l.SetToplevelState(ctx, args[0], flag, op); err != nil {
					return err
				}
				return done(cmd, fmt.Sprintf("%s %s", use, args[0]), map[string]any{
					"toplevel":  args[0],
					"operation": op.String(),
				})
			})
		},
	}
	cmd.Flags().BoolVar(&set, "set", false, "Set the state")
	cmd.Flags().BoolVar(&unset, "unset", false, "Unset the state")
	cmd.Flags().BoolVar(&toggle, "toggle", false, "Flip the current state")
	return cmd
}

func newToplevelActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate ID",
		Short: "Focus a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLayer(cmd, func(ctx context.Context, l *command.Layer) error {
				if err := l.ActivateToplevel(ctx, args[0]); err != nil {
					return err
				}
				return done(cmd, "activated "+args[0], map[string]any{"toplevel": args[0]})
			})
		},
	}
}

func newToplevelCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close ID",
		Short: "Ask a window to close",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLayer(cmd, func(ctx context.Context, l *command.Layer) error {
				if err := l.CloseToplevel(ctx, args[0]); err != nil {
					return err
				}
				return done(cmd, "closed "+args[0], map[string]any{"toplevel": args[0]})
			})
		},
	}
}

func newToplevelMoveToWorkspaceCmd() *cobra.Command {
	var display string
	cmd := &cobra.Command{
		Use:   "move-to-workspace ID WORKSPACE",
		Short: "Move a window to another workspace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := command.WorkspaceRef{Name: args[1], Display: display}
			return withLayer(cmd, func(ctx context.Context, l *command.Layer) error {
				if err := l.MoveToplevelToWorkspace(ctx, args[0], ref); err != nil {
					return err
				}
				return done(cmd, fmt.Sprintf("moved %s to workspace %s", args[0], args[1]), map[string]any{
					"toplevel":  args[0],
					"workspace": args[1],
				})
			})
		},
	}
	cmd.Flags().StringVarP(&display, "display", "d", "", "Display of the workspace; needed when the name is not unique")
	return cmd
}
