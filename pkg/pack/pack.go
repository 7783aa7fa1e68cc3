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

package pack

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/pathrewrite/pkg/config"
	"github.com/walteh/pathrewrite/pkg/fsys"
	"github.com/walteh/pathrewrite/pkg/operation"
	"github.com/walteh/pathrewrite/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📦 Context is what the packaging pipeline hands to its after-pack hook
type Context struct {
	AppDir   string `json:"appDir"`
	OutDir   string `json:"appOutDir,omitempty"`
	Platform string `json:"electronPlatformName,omitempty"`
	Arch     string `json:"arch,omitempty"`
}

// 📝 DecodeContext reads a pipeline context from JSON. Unknown fields are
// ignored since the pipeline passes much more than the hook needs.
func DecodeContext(r io.Reader) (Context, error) {
	var pc Context
	if err := json.NewDecoder(r).Decode(&pc); err != nil {
		return Context{}, errors.Errorf("decoding pack context: %w", err)
	}
	if pc.AppDir == "" {
		return Context{}, errors.New("pack context has no appDir")
	}
	return pc, nil
}

// 🪝 Hook rewrites asset paths of a freshly packaged application
type Hook struct {
	cfg      *config.Config
	newFS    func(root string) fsys.FS
	reporter status.Reporter
}

// HookOption configures a Hook
type HookOption func(*Hook)

// WithFS replaces the on-disk filesystem, rooted at the app dir, with another one
func WithFS(newFS func(root string) fsys.FS) HookOption {
	return func(h *Hook) {
		h.newFS = newFS
	}
}

// WithReporter sets the progress reporter
func WithReporter(r status.Reporter) HookOption {
	return func(h *Hook) {
		h.reporter = r
	}
}

// 🏭 NewHook creates a hook. A nil config means config.Default().
func NewHook(cfg *config.Config, opts ...HookOption) *Hook {
	if cfg == nil {
		cfg = config.Default()
	}
	h := &Hook{
		cfg: cfg,
		newFS: func(root string) fsys.FS {
			return fsys.NewOS(root)
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Targets returns the absolute directories the hook rewrites for appDir
func (h *Hook) Targets(appDir string) []string {
	targets := make([]string, len(h.cfg.Dirs))
	for i, dir := range h.cfg.Dirs {
		targets[i] = filepath.Join(appDir, dir)
	}
	return targets
}

// 🎯 AfterPack rewrites every configured subdirectory of pc.AppDir. It returns
// true once all of them were processed.
func (h *Hook) AfterPack(ctx context.Context, pc Context) (bool, error) {
	if pc.AppDir == "" {
		return false, errors.New("app dir is required")
	}

	logger := zerolog.Ctx(ctx).With().
		Str("app_dir", pc.AppDir).
		Str("platform", pc.Platform).
		Str("arch", pc.Arch).
		Logger()
	logger.Info().Strs("targets", h.Targets(pc.AppDir)).Msg("after-pack rewrite")

	fs := h.newFS(pc.AppDir)

	ops := make([]operation.Operation, 0, len(h.cfg.Dirs))
	for _, dir := range h.cfg.Dirs {
		op, err := operation.NewRewriteOperation(h.cfg.Options(fs, dir, h.reporter))
		if err != nil {
			return false, errors.Errorf("preparing %s: %w", dir, err)
		}
		ops = append(ops, op)
	}

	if err := operation.NewRunner(&logger).Run(ctx, ops...); err != nil {
		return false, errors.Errorf("after-pack in %s: %w", pc.AppDir, err)
	}

	return true, nil
}
