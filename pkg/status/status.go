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

package status

import (
	"context"

	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents what happened to one entry of a rewrite run
type FileStatus int

const (
	StatusPending   FileStatus = iota // Not processed (yet)
	StatusRewritten                   // Content changed and was written back
	StatusUnchanged                   // No search token found, nothing written
	StatusStale                       // Would be rewritten (dry run)
	StatusSkipped                     // Not a regular file, or filtered out
	StatusFailed                      // Could not be read or written
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRewritten:
		return "rewritten"
	case StatusUnchanged:
		return "unchanged"
	case StatusStale:
		return "stale"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileResult is the outcome for a single directory entry
type FileResult struct {
	Name         string     // Entry name within the target directory
	Path         string     // Path handed to the filesystem
	Status       FileStatus // Final status
	Replacements int        // Number of substitutions made (or that would be made)
	Reason       string     // Why an entry was skipped
	Err          error      // Failure, when Status is StatusFailed
}

// 📋 Report collects the results of one run over a target directory
type Report struct {
	Dir    string
	DryRun bool
	Files  []FileResult
}

// Count returns how many entries ended in the given status
func (r *Report) Count(s FileStatus) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == s {
			n++
		}
	}
	return n
}

// Replacements returns the total substitutions across all files
func (r *Report) Replacements() int {
	n := 0
	for _, f := range r.Files {
		n += f.Replacements
	}
	return n
}

// Err joins every file failure, or returns nil
func (r *Report) Err() error {
	var errs []error
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// 📈 Reporter receives progress events from a rewrite run
type Reporter interface {
	StartOperation(ctx context.Context, dir string, total int)
	TrackFile(ctx context.Context, result FileResult)
	FinishOperation(ctx context.Context, report *Report)
}

// NopReporter drops every event. It backs silent runs.
type NopReporter struct{}

func (NopReporter) StartOperation(context.Context, string, int) {}
func (NopReporter) TrackFile(context.Context, FileResult)       {}
func (NopReporter) FinishOperation(context.Context, *Report)    {}
