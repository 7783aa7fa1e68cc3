package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/pathrewrite/cmd/pathrewrite/opts"
	"github.com/walteh/pathrewrite/pkg/log"
	"github.com/walteh/pathrewrite/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewStatusCmd creates a new status command
func NewStatusCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <dir>",
		Short: "Check whether files in dir still need rewriting",
		Long: `Status runs the rewrite without writing anything and fails when a file
directly inside dir still contains a search token. Use it in CI after
packaging to confirm the after-pack step ran.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := runDir(ctx, opts, args[0], true)
			if err != nil {
				return errors.Errorf("checking %s: %w", args[0], err)
			}

			if stale := op.Report().Count(status.StatusStale); stale > 0 {
				log.FromContext(ctx).Warningf("run 'pathrewrite rewrite %s' to fix", args[0])
				return errors.Errorf("%d file(s) in %s need rewriting", stale, args[0])
			}

			opts.UserLogger.LogStateChange("Files are up to date")
			return nil
		},
	}

	return cmd
}
