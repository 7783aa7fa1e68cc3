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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/pathrewrite/cmd/pathrewrite/opts"
	"github.com/walteh/pathrewrite/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// execute runs the CLI with args and returns what it printed
func execute(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	pterm.DisableStyling()
	color.NoColor = true
	t.Cleanup(func() {
		pterm.EnableStyling()
		color.NoColor = false
	})

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&opts.RootOpts{})
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func readTree(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, name))
	require.NoError(t, err)
	return string(data)
}

func TestRewriteCommand(t *testing.T) {
	root := writeTree(t, map[string]string{
		"css/app.css":      "@font-face{src:url(app:///fonts/a.woff2)}",
		"css/plain.css":    "body{}",
		"css/nested/x.css": "url(app:///fonts/x)",
	})
	dir := filepath.Join(root, "css")

	res := execute(t, "", "rewrite", dir)
	require.NoError(t, res.err)

	assert.Equal(t, "@font-face{src:url(app://./fonts/a.woff2)}", readTree(t, root, "css/app.css"))
	assert.Equal(t, "url(app:///fonts/x)", readTree(t, root, "css/nested/x.css"))

	assert.Contains(t, res.stdout, "[rewriting "+dir+"]")
	assert.Regexp(t, `app\.css\s+rewritten\s+1 replacement`, res.stdout)
	assert.Equal(t, 1, strings.Count(res.stdout, dir+": 1 rewritten, 1 unchanged, 1 skipped, 0 failed"), "summary is printed once")
	assert.NotContains(t, res.stderr, "app.css", "progress goes to stdout only")
}

func TestRewriteCommandSilent(t *testing.T) {
	root := writeTree(t, map[string]string{
		"css/app.css": "url(app:///fonts/a)",
	})

	res := execute(t, "", "--silent", "rewrite", filepath.Join(root, "css"))
	require.NoError(t, res.err)

	assert.Equal(t, "url(app://./fonts/a)", readTree(t, root, "css/app.css"))
	assert.Empty(t, res.stdout)
	assert.NotContains(t, res.stderr, "app.css")
}

func TestRewriteCommandRelativeDir(t *testing.T) {
	root := writeTree(t, map[string]string{
		"dist/css/app.css": "url(app:///fonts/a)",
	})

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	res := execute(t, "", "rewrite", "dist/css/")
	require.NoError(t, res.err)

	assert.Equal(t, "url(app://./fonts/a)", readTree(t, root, "dist/css/app.css"))
	assert.Contains(t, res.stdout, "[rewriting "+filepath.Join("dist", "css")+"]")
}

func TestRewriteCommandMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "css")

	res := execute(t, "", "rewrite", dir)
	require.Error(t, res.err)

	var dirErr *operation.DirectoryAccessError
	require.True(t, errors.As(res.err, &dirErr))
	assert.Equal(t, dir, dirErr.Dir)
}

func TestStatusCommand(t *testing.T) {
	root := writeTree(t, map[string]string{
		"css/app.css": "url(app:///fonts/a)",
	})
	dir := filepath.Join(root, "css")

	res := execute(t, "", "status", dir)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "1 file(s)")
	assert.Equal(t, "url(app:///fonts/a)", readTree(t, root, "css/app.css"), "status never writes")

	require.NoError(t, execute(t, "", "rewrite", dir).err)

	res = execute(t, "", "status", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Files are up to date")
}

func TestAfterPackCommand(t *testing.T) {
	tests := []struct {
		name  string
		stdin func(appDir string) string
		args  func(appDir string) []string
	}{
		{
			name:  "app_dir_flag",
			stdin: func(string) string { return "" },
			args:  func(appDir string) []string { return []string{"afterpack", "--app-dir", appDir} },
		},
		{
			name: "context_on_stdin",
			stdin: func(appDir string) string {
				return `{"appDir": "` + filepath.ToSlash(appDir) + `", "electronPlatformName": "linux", "arch": "x64"}`
			},
			args: func(string) []string { return []string{"afterpack"} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appDir := writeTree(t, map[string]string{
				"css/app.css": "url(app:///fonts/a)",
				"index.html":  "app:///fonts",
			})

			res := execute(t, tt.stdin(appDir), tt.args(appDir)...)
			require.NoError(t, res.err)

			assert.Equal(t, "url(app://./fonts/a)", readTree(t, appDir, "css/app.css"))
			assert.Equal(t, "app:///fonts", readTree(t, appDir, "index.html"))
			assert.Contains(t, res.stdout, "After-pack rewrite complete")
		})
	}
}

func TestAfterPackCommandBadStdin(t *testing.T) {
	res := execute(t, "not json", "afterpack")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "reading after-pack context")
}

func TestFlagsOverrideConfig(t *testing.T) {
	root := writeTree(t, map[string]string{
		"css/app.css":      "url(app:///img/a.png)",
		"pathrewrite.yaml": "rules:\n  - search: \"app:///img\"\n    replace: \"app://./img\"\non_error: continue\n",
	})

	res := execute(t, "", "--config", filepath.Join(root, "pathrewrite.yaml"), "--silent", "rewrite", filepath.Join(root, "css"))
	require.NoError(t, res.err)

	assert.Equal(t, "url(app://./img/a.png)", readTree(t, root, "css/app.css"))
	assert.Empty(t, res.stdout, "silent suppresses user output")
	assert.NotContains(t, res.stderr, "[rewriting")
}

func TestInvalidFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errContains string
	}{
		{name: "unknown_policy", args: []string{"--on-error", "retry", "rewrite", "."}, errContains: "on_error must be"},
		{name: "negative_concurrency", args: []string{"--concurrency", "-2", "rewrite", "."}, errContains: "concurrency must not be negative"},
		{name: "missing_config", args: []string{"--config", "/nonexistent/pathrewrite.yaml", "rewrite", "."}, errContains: "loading config"},
		{name: "missing_dir_arg", args: []string{"rewrite"}, errContains: "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, "", tt.args...)
			require.Error(t, res.err)
			assert.Contains(t, res.err.Error(), tt.errContains)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	res := execute(t, "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "pathrewrite version info")

	res = execute(t, "", "version", "--json")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"go_version"`)
}
