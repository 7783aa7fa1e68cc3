package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/pathrewrite/cmd/pathrewrite/opts"
	"github.com/walteh/pathrewrite/pkg/log"
	"github.com/walteh/pathrewrite/pkg/pack"
	"gitlab.com/tozd/go/errors"
)

// NewAfterPackCmd creates the command run by the packaging pipeline
func NewAfterPackCmd(opts *opts.RootOpts) *cobra.Command {
	var appDir string

	cmd := &cobra.Command{
		Use:   "afterpack",
		Short: "Rewrite asset paths of a packaged app as an after-pack step",
		Long: `Afterpack rewrites the configured subdirectories (css by default) of the
packaged application directory. Pass the directory with --app-dir, or pipe
the pipeline's after-pack context as JSON on stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pc := pack.Context{AppDir: appDir}
			if appDir == "" {
				decoded, err := pack.DecodeContext(cmd.InOrStdin())
				if err != nil {
					return errors.Errorf("reading after-pack context: %w", err)
				}
				pc = decoded
			}

			console := log.FromContext(ctx)
			console.Header("after-pack " + pc.AppDir)

			hook := pack.NewHook(opts.Config, pack.WithReporter(console))
			done, err := hook.AfterPack(ctx, pc)
			if err != nil {
				return err
			}
			if done {
				opts.UserLogger.LogStateChange("After-pack rewrite complete")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&appDir, "app-dir", "", "packaged application directory")

	return cmd
}
