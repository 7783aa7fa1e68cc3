package commands

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/pathrewrite/cmd/pathrewrite/opts"
	"github.com/walteh/pathrewrite/pkg/fsys"
	"github.com/walteh/pathrewrite/pkg/log"
	"github.com/walteh/pathrewrite/pkg/operation"
	"github.com/walteh/pathrewrite/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewRewriteCmd creates a new rewrite command
func NewRewriteCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite <dir>",
		Short: "Rewrite asset paths in the files directly inside dir",
		Long: `Rewrite replaces every configured search token with its replacement in
each regular file directly inside dir. Subdirectories are left alone and
files without a match are not written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := runDir(ctx, opts, args[0], false)
			if err != nil {
				return errors.Errorf("rewriting %s: %w", args[0], err)
			}
			if op.Report().Count(status.StatusRewritten) == 0 {
				log.FromContext(ctx).Infof("nothing to rewrite in %s", args[0])
			}
			return nil
		},
	}

	return cmd
}

// target returns a filesystem and the directory on it for a path given on
// the command line. Relative paths stay as typed so reports and errors show
// them unchanged; anything else is made absolute.
func target(dir string) (fsys.FS, string, error) {
	if clean := filepath.Clean(dir); filepath.IsLocal(clean) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", errors.Errorf("getting working directory: %w", err)
		}
		return fsys.NewOS(wd), clean, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", errors.Errorf("resolving %s: %w", dir, err)
	}
	return fsys.NewOS(filepath.VolumeName(abs) + string(filepath.Separator)), abs, nil
}

// runDir executes one rewrite of dir on disk. The operation is returned even
// when it fails so callers can inspect the files it reached.
func runDir(ctx context.Context, opts *opts.RootOpts, dir string, dryRun bool) (*operation.RewriteOperation, error) {
	fs, targetDir, err := target(dir)
	if err != nil {
		return nil, err
	}

	rewriteOpts := opts.Config.Options(fs, targetDir, log.FromContext(ctx))
	rewriteOpts.DryRun = dryRun

	op, err := operation.NewRewriteOperation(rewriteOpts)
	if err != nil {
		return nil, err
	}
	return op, op.Execute(ctx)
}
