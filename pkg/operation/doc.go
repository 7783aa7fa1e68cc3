/*
Package operation rewrites path tokens inside the files of a directory.

🎯 Purpose:
- Takes one snapshot of a target directory's immediate entries
- Applies an ordered set of literal rules to every regular file
- Writes changed files back in place
- Reports each entry through a status.Reporter

🔄 Flow:
1. Stat and list the target directory (DirectoryAccessError on failure)
2. Skip subdirectories, symlinks and entries filtered out by globs
3. Read, replace, write back (FileAccessError on failure)
4. Hand the finished status.Report to the reporter

⚡ Failure policy:
- OnErrorAbort (default): the first failing file ends the run, its error is
  returned and entries not yet started stay pending.
- OnErrorContinue: every file is attempted; all failures come back joined.

The run is not transactional. Files rewritten before a failure stay rewritten
and no backup is kept.

🔍 Example:

	err := operation.Rewrite(ctx, fsys.NewOS(appDir), "css", operation.Options{
		Rules: text.DefaultRules(),
	})
	var dirErr *operation.DirectoryAccessError
	if errors.As(err, &dirErr) {
		// css directory is missing
	}

Several operations can be chained with a Runner, which stops at the first
failing stage.
*/
package operation
