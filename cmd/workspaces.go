package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/internal/command"
	"github.com/grovetools/conductor/internal/present"
)

// NewWorkspacesCmd creates the `workspaces` command.
func NewWorkspacesCmd() *cobra.Command {
	var capabilities bool
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"w"},
		Short:   "List all workspaces",
		Long: `List all workspaces, or reorder, move, pin, activate, rename and tile them.

A workspace is named by its name plus --display when the name is used on
more than one display. Positions count from 1.

Examples:
  conductor workspaces --capabilities
  conductor workspaces move-to-pos 3 1 -d DP-1
  conductor workspaces move-to-display 3 HDMI-A-1
  conductor workspaces tiling 2 on`,
		Args: cobra.NoArgs,
	}
	cmd.Flags().BoolVar(&capabilities, "capabilities", false, "Print what each workspace allows")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return listWorkspaces(cmd, capabilities)
	}

	cmd.AddCommand(
		newWorkspaceListCmd(),
		newWorkspaceMoveToPosCmd(),
		newWorkspaceMoveToDisplayCmd(),
		newWorkspaceActionCmd("pin", "Keep a workspace in place", "pinned", (*command.Layer).PinWorkspace),
		newWorkspaceActionCmd("unpin", "Release a pinned workspace", "unpinned", (*command.Layer).UnpinWorkspace),
		newWorkspaceActionCmd("activate", "Switch to a workspace", "activated", (*command.Layer).ActivateWorkspace),
		newWorkspaceActionCmd("deactivate", "Deactivate a workspace", "deactivated", (*command.Layer).DeactivateWorkspace),
		newWorkspaceRenameCmd(),
		newWorkspaceTilingCmd(),
	)
	return cmd
}

func newWorkspaceListCmd() *cobra.Command {
	var capabilities bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listWorkspaces(cmd, capabilities)
		},
	}
	cmd.Flags().BoolVar(&capabilities, "capabilities", false, "Print what each workspace allows")
	return cmd
}

func listWorkspaces(cmd *cobra.Command, capabilities bool) error {
	return withLayer(cmd, func(ctx context.Context, l *command.Layer) error {
		snap, err := l.Workspaces(ctx)
		if err != nil {
			return err
		}
		return present.Render(cmd.OutOrStdout(), runtimeOf(cmd).format, "Workspaces", present.Workspaces(snap, capabilities))
	})
}

// addDisplayFlag registers --display for naming the workspace's display.
func addDisplayFlag(cmd *cobra.Command) *string {
	var display string
	cmd.Flags().StringVarP(&display, "display", "d", "", "Display of the workspace; needed when the name is not unique")
	return &display
}

func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, errors.InvalidInput("position must be a non-negative number, got %q", arg)
	}
	return n, nil
}

func newWorkspaceMoveToPosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move-to-pos NAME POSITION",
		Short: "Move the workspace to the n-th position within its group",
		Args:  cobra.ExactArgs(2),
	}
	display := addDisplayFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		pos, err := parsePosition(args[1])
		if err != nil {
			return err
		}
		ref := command.WorkspaceRef{Name: args[0], Display: *display}
		return withLayer(cmd, func(ctx context.Context, l *command.Layer) error {
			if err := l.MoveWorkspace(ctx, ref, pos, ""); err != nil {
				return err
			}
			return done(cmd, fmt.Sprintf("moved workspace %s to position %d", ref.Name, pos), map[string]any{
				"workspace": ref.Name,
				"position":  pos,
			})
		})
	}
	return cmd
}

func newWorkspaceMoveToDisplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move-to-display NAME TARGET_DISPLAY [POSITION]",
		Short: "Move the workspace to another display",
		Long: `Move the workspace to the workspace group shown on TARGET_DISPLAY.

Without POSITION the workspace becomes the last one of that group.`,
		Args: cobra.RangeArgs(2, 3),
	}
	display := addDisplayFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		pos := command.Last
		if len(args) == 3 {
			n, err := parsePosition(args[2])
			if err != nil {
				return err
			}
			pos = n
		}
		ref := command.WorkspaceRef{Name: args[0], Display: *display}
		target := args[1]
		return withLayer(cmd, func(ctx context.Context, l *command.Layer) error {
			if err := l.MoveWorkspace(ctx, ref, pos, target); err != nil {
				return err
			}
			fields := map[string]any{"workspace": ref.Name, "display": target}
			if pos != command.Last {
				fields["position"] = pos
			}
			return done(cmd, fmt.Sprintf("moved workspace %s to display %s", ref.Name, target), fields)
		})
	}
	return cmd
}

type workspaceAction func(l *command.Layer, ctx context.Context, ref command.WorkspaceRef) error

func newWorkspaceActionCmd(use, short, past string, action workspaceAction) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " NAME",
		Short: short,
		Args:  cobra.ExactArgs(1),
	}
	display := addDisplayFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ref := command.WorkspaceRef{Name: args[0], Display: *display}
		return withLayer(cmd, func(ctx context.Context, l *command.Layer) error {
			if err := action(l, ctx, ref); err != nil {
				return err
			}
			return done(cmd, past+" workspace "+ref.Name, map[string]any{"workspace": ref.Name})
		})
	}
	return cmd
}

func newWorkspaceRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename NAME NEW_NAME",
		Short: "Rename a workspace",
		Args:  cobra.ExactArgs(2),
	}
	display := addDisplayFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if args[1] == "" {
			return errors.InvalidInput("new workspace name must not be empty")
		}
		ref := command.WorkspaceRef{Name: args[0], Display: *display}
		return withLayer(cmd, func(ctx context.Context, l *command.Layer) error {
			if err := l.RenameWorkspace(ctx, ref, args[1]); err != nil {
				return err
			}
			return done(cmd, fmt.Sprintf("renamed workspace %s to %s", ref.Name, args[1]), map[string]any{
				"workspace": ref.Name,
				"name":      args[1],
			})
		})
	}
	return cmd
}

func newWorkspaceTilingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "tiling NAME on|off",
		Short:     "Turn automatic tiling on or off",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"on", "off"},
	}
	display := addDisplayFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var enabled bool
		switch args[1] {
		case "on":
			enabled = true
		case "off":
		default:
			return errors.InvalidInput("tiling must be on or off, got %q", args[1])
		}
		ref := command.WorkspaceRef{Name: args[0], Display: *display}
		return withLayer(cmd, func(ctx context.Context, l *command.Layer) error {
			if err := l.SetWorkspaceTiling(ctx, ref, enabled); err != nil {
				return err
			}
			return done(cmd, fmt.Sprintf("tiling %s for workspace %s", args[1], ref.Name), map[string]any{
				"workspace": ref.Name,
				"tiling":    args[1],
			})
		})
	}
	return cmd
}
