// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/pathrewrite/pkg/fsys"
	"github.com/walteh/pathrewrite/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔄 Rewrite rewrites the immediate files of dir on fs. It is a shorthand for
// building a RewriteOperation and executing it once.
func Rewrite(ctx context.Context, fs fsys.FS, dir string, opts Options) error {
	opts.FS = fs
	opts.Dir = dir
	op, err := NewRewriteOperation(opts)
	if err != nil {
		return err
	}
	return op.Execute(ctx)
}

// 🏃 Execute runs the rewrite over a fresh snapshot of the target directory
func (op *RewriteOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("dir", op.opts.Dir).Logger()

	report := &status.Report{
		Dir:    op.opts.Dir,
		DryRun: op.opts.DryRun,
	}

	op.mu.Lock()
	op.state = StatePending
	op.report = report
	op.mu.Unlock()

	entries, err := op.snapshot()
	if err != nil {
		logger.Debug().Err(err).Msg("listing target directory")
		op.setState(StateFailed)
		return err
	}

	report.Files = make([]status.FileResult, len(entries))
	for i, entry := range entries {
		report.Files[i] = status.FileResult{
			Name:   entry.Name(),
			Path:   filepath.Join(op.opts.Dir, entry.Name()),
			Status: status.StatusPending,
		}
	}

	op.emit(func(r status.Reporter) { r.StartOperation(ctx, op.opts.Dir, len(entries)) })

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(op.opts.Concurrency)

	for i, entry := range entries {
		g.Go(func() error {
			// a failure elsewhere (abort policy) or the caller cancelled
			if gctx.Err() != nil {
				return nil
			}

			res := op.processEntry(ctx, entry, report.Files[i])
			report.Files[i] = res

			logger.Debug().
				Str("file", res.Name).
				Str("status", res.Status.String()).
				Int("replacements", res.Replacements).
				Msg("processed entry")

			op.emit(func(r status.Reporter) { r.TrackFile(ctx, res) })

			if res.Err != nil && op.opts.OnError == OnErrorAbort {
				return res.Err
			}
			return nil
		})
	}

	err = g.Wait()
	if err == nil && ctx.Err() != nil {
		err = errors.Errorf("rewriting %s: %w", op.opts.Dir, ctx.Err())
	}
	if err == nil {
		err = report.Err()
	}

	op.emit(func(r status.Reporter) { r.FinishOperation(ctx, report) })

	if err != nil {
		op.setState(StateFailed)
		return err
	}

	op.setState(StateDone)
	return nil
}

// 📂 snapshot lists the target directory once
func (op *RewriteOperation) snapshot() ([]os.FileInfo, error) {
	info, err := op.opts.FS.Stat(op.opts.Dir)
	if err != nil {
		return nil, &DirectoryAccessError{Dir: op.opts.Dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &DirectoryAccessError{Dir: op.opts.Dir, Err: ErrNotDirectory}
	}

	entries, err := op.opts.FS.ReadDir(op.opts.Dir)
	if err != nil {
		return nil, &DirectoryAccessError{Dir: op.opts.Dir, Err: err}
	}
	return entries, nil
}

// 📄 processEntry rewrites a single entry and returns its result
func (op *RewriteOperation) processEntry(ctx context.Context, entry os.FileInfo, res status.FileResult) status.FileResult {
	if !entry.Mode().IsRegular() {
		res.Status = status.StatusSkipped
		res.Reason = "not a regular file"
		return res
	}

	if !op.selected(entry.Name()) {
		res.Status = status.StatusSkipped
		res.Reason = "excluded by pattern"
		return res
	}

	content, err := op.opts.FS.ReadFile(res.Path)
	if err != nil {
		res.Status = status.StatusFailed
		res.Err = &FileAccessError{Path: res.Path, Op: "read", Err: err}
		return res
	}

	result, err := op.opts.Replacer.Replace(ctx, content, op.opts.Rules)
	if err != nil {
		res.Status = status.StatusFailed
		res.Err = errors.Errorf("replacing text in %s: %w", res.Path, err)
		return res
	}

	res.Replacements = result.Replacements()
	if !result.Changed() {
		res.Status = status.StatusUnchanged
		return res
	}

	if op.opts.DryRun {
		res.Status = status.StatusStale
		return res
	}

	if err := op.opts.FS.WriteFile(res.Path, result.Rewritten, entry.Mode().Perm()); err != nil {
		res.Status = status.StatusFailed
		res.Err = &FileAccessError{Path: res.Path, Op: "write", Err: err}
		return res
	}

	res.Status = status.StatusRewritten
	return res
}

// 🔍 selected checks the include and exclude globs against an entry name
func (op *RewriteOperation) selected(name string) bool {
	if len(op.opts.Include) > 0 && !matchAny(op.opts.Include, name) {
		return false
	}
	return !matchAny(op.opts.Exclude, name)
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		// patterns are validated up front, so Match cannot fail here
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// emit serializes reporter calls so reporters need not be safe for concurrent use
func (op *RewriteOperation) emit(fn func(status.Reporter)) {
	op.mu.Lock()
	defer op.mu.Unlock()
	fn(op.opts.Reporter)
}

func (op *RewriteOperation) setState(s State) {
	op.mu.Lock()
	defer op.mu.Unlock()
	op.state = s
}
