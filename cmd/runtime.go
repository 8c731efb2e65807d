package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/grovetools/conductor/cli"
	"github.com/grovetools/conductor/config"
	"github.com/grovetools/conductor/internal/command"
	"github.com/grovetools/conductor/internal/engine"
	"github.com/grovetools/conductor/internal/present"
	"github.com/grovetools/conductor/logging"
)

const skipConfigAnnotation = "conductor/skip-config"

type runtimeKey struct{}

// runtime is the per-invocation state resolved from flags and config.
type runtime struct {
	cfg     *config.Config
	format  present.Format
	display string
	engine  engine.Options
}

// connect opens a session to the compositor. Tests replace it.
var connect = func(ctx context.Context, display string, opts engine.Options) (*engine.Session, error) {
	return engine.Connect(ctx, display, opts)
}

// skipConfig marks cmd as runnable without loading the config file.
func skipConfig(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[skipConfigAnnotation] = "true"
	return cmd
}

// setup loads the configuration, applies logging settings and resolves
// the output format and convergence options.
func setup(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	logger := cli.GetLogger(cmd)

	cfg := config.Default()
	if cmd.Annotations[skipConfigAnnotation] == "" {
		loaded, err := config.Resolve(opts.ConfigFile)
		if err != nil {
			return err
		}
		cfg = loaded
		logging.Configure(cfg.Logging())
	}
	if cfg.Path != "" {
		logger.WithField("path", cfg.Path).Debug("Loaded configuration")
	}

	format := opts.Format
	if !opts.FormatSet {
		f, err := present.ParseFormat(cfg.Output.Format)
		if err != nil {
			return err
		}
		format = f
	}

	timeout := cfg.Convergence.Timeout.Std()
	if opts.TimeoutSet {
		timeout = opts.Timeout
	}

	rt := &runtime{
		cfg:     cfg,
		format:  format,
		display: cfg.Wayland.Display,
		engine: engine.Options{
			InitialDelay: cfg.Convergence.InitialDelay.Std(),
			MaxDelay:     cfg.Convergence.MaxDelay.Std(),
			Timeout:      timeout,
		},
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithWriter(ctx, cmd.ErrOrStderr())
	cmd.SetContext(context.WithValue(ctx, runtimeKey{}, rt))
	return nil
}

// runtimeOf returns the state set up for cmd, falling back to defaults.
func runtimeOf(cmd *cobra.Command) *runtime {
	if ctx := cmd.Context(); ctx != nil {
		if rt, ok := ctx.Value(runtimeKey{}).(*runtime); ok {
			return rt
		}
	}
	return &runtime{cfg: config.Default(), format: cli.GetOptions(cmd).Format}
}

// withLayer connects to the compositor, runs fn and closes the session.
func withLayer(cmd *cobra.Command, fn func(ctx context.Context, l *command.Layer) error) error {
	rt := runtimeOf(cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := connect(ctx, rt.display, rt.engine)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(ctx, command.New(s))
}

// done reports a successful mutation. Human output stays silent; soft
// conditions were already reported as warnings.
func done(cmd *cobra.Command, msg string, fields map[string]any) error {
	format := runtimeOf(cmd).format
	if format == present.FormatHuman {
		return nil
	}
	return present.Message(cmd.OutOrStdout(), format, msg, fields)
}
