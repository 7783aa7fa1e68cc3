package operation

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/pathrewrite/pkg/fsys"
	"github.com/walteh/pathrewrite/pkg/status"
	"github.com/walteh/pathrewrite/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is a single pipeline step
type Operation interface {
	Execute(ctx context.Context) error
}

// OnError selects what a run does after a file fails
type OnError string

const (
	// OnErrorAbort stops at the first failing file and returns its error
	OnErrorAbort OnError = "abort"
	// OnErrorContinue attempts every file and returns all failures joined
	OnErrorContinue OnError = "continue"
)

// Valid reports whether the policy is known. The empty value means abort.
func (p OnError) Valid() bool {
	switch p {
	case "", OnErrorAbort, OnErrorContinue:
		return true
	}
	return false
}

// State is the lifecycle of one rewrite run
type State int

const (
	StatePending State = iota
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "pending"
	}
}

// 🔧 Options configures a rewrite operation
type Options struct {
	// FS is the filesystem the target directory lives on
	FS fsys.FS
	// Dir is the target directory, relative to FS
	Dir string
	// Rules are applied in order to every file; empty means text.DefaultRules
	Rules []text.Rule
	// Replacer applies the rules; nil means text.SimpleReplacer
	Replacer text.Replacer
	// Reporter receives progress events unless Silent is set
	Reporter status.Reporter
	// Silent suppresses all progress events
	Silent bool
	// DryRun computes replacements without writing
	DryRun bool
	// OnError is the failure policy; empty means abort
	OnError OnError
	// Concurrency bounds how many files are processed at once; <= 0 means 1
	Concurrency int
	// Include limits processing to entry names matching any of these globs
	Include []string
	// Exclude skips entry names matching any of these globs
	Exclude []string
}

// 📦 RewriteOperation rewrites the immediate files of one directory in place
type RewriteOperation struct {
	opts Options

	mu     sync.Mutex
	state  State
	report *status.Report
}

var _ Operation = (*RewriteOperation)(nil)

// 🏭 NewRewriteOperation validates opts and fills in defaults
func NewRewriteOperation(opts Options) (*RewriteOperation, error) {
	if opts.FS == nil {
		return nil, errors.Errorf("filesystem is required")
	}
	if opts.Dir == "" {
		return nil, errors.Errorf("target directory is required")
	}
	opts.Dir = filepath.Clean(opts.Dir)

	if len(opts.Rules) == 0 {
		opts.Rules = text.DefaultRules()
	}
	if opts.Replacer == nil {
		opts.Replacer = text.NewSimpleReplacer()
	}
	if err := opts.Replacer.Validate(opts.Rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	if !opts.OnError.Valid() {
		return nil, errors.Errorf("unknown error policy %q", opts.OnError)
	}
	if opts.OnError == "" {
		opts.OnError = OnErrorAbort
	}

	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}

	for _, pattern := range append(append([]string{}, opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid pattern %q", pattern)
		}
	}

	if opts.Silent || opts.Reporter == nil {
		opts.Reporter = status.NopReporter{}
	}

	return &RewriteOperation{
		opts:  opts,
		state: StatePending,
	}, nil
}

// Dir returns the target directory
func (op *RewriteOperation) Dir() string {
	return op.opts.Dir
}

// State returns where the run is in its lifecycle
func (op *RewriteOperation) State() State {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.state
}

// Report returns the results of the last run, or nil before the first one
func (op *RewriteOperation) Report() *status.Report {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.report
}
