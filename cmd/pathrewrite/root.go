package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/pathrewrite/cmd/pathrewrite/commands"
	"github.com/walteh/pathrewrite/cmd/pathrewrite/opts"
	"github.com/walteh/pathrewrite/pkg/config"
	"github.com/walteh/pathrewrite/pkg/log"
	"github.com/walteh/pathrewrite/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the persistent flags shared by every command
type rootFlags struct {
	configFile  string
	debug       bool
	silent      bool
	onError     string
	concurrency int
}

// newRootCmd builds the command tree around o
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "pathrewrite",
		Short: "Rewrite absolute app:// asset paths in packaged application files",
		Long: `pathrewrite scans the files directly inside a directory and replaces
app:///fonts with app://./fonts so bundled stylesheets resolve their fonts
relative to the application instead of the filesystem root.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), cmd.ErrOrStderr(), flags.debug)
			ctx, err := initRootOpts(ctx, cmd, flags, o)
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
	}

	addRootFlags(rootCmd, flags)

	rootCmd.AddCommand(
		commands.NewRewriteCmd(o),
		commands.NewStatusCmd(o),
		commands.NewAfterPackCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file path (.yaml, .hcl or .json)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flags.silent, "silent", "s", false, "suppress progress output")
	cmd.PersistentFlags().StringVar(&flags.onError, "on-error", "", "failure policy: abort or continue")
	cmd.PersistentFlags().IntVar(&flags.concurrency, "concurrency", 0, "files processed at once")
}

// setupLogging returns ctx carrying a zerolog logger configured from flags
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// initRootOpts loads the config, applies flag overrides and creates loggers.
// The returned context carries the console progress logger.
func initRootOpts(ctx context.Context, cmd *cobra.Command, flags *rootFlags, o *opts.RootOpts) (context.Context, error) {
	cfg := config.Default()
	if flags.configFile != "" {
		loaded, err := config.Load(ctx, flags.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("silent") {
		cfg.Silent = flags.silent
	}
	if changed("on-error") {
		cfg.OnError = operation.OnError(flags.onError)
	}
	if changed("concurrency") {
		cfg.Concurrency = flags.concurrency
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating flags: %w", err)
	}

	out := cmd.OutOrStdout()
	if cfg.Silent {
		out = io.Discard
	}

	o.Config = cfg
	o.UserLogger = log.NewUserLogger(ctx, out)
	return log.NewContext(ctx, log.New(out, *zerolog.Ctx(ctx))), nil
}
