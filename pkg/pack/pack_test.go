package pack_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/pathrewrite/pkg/config"
	"github.com/walteh/pathrewrite/pkg/fsys"
	"github.com/walteh/pathrewrite/pkg/operation"
	"github.com/walteh/pathrewrite/pkg/pack"
	"gitlab.com/tozd/go/errors"
)

func newTestContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

// memHook returns a hook whose filesystem is mem regardless of the app dir
func memHook(t *testing.T, cfg *config.Config, files map[string]string) (*pack.Hook, *fsys.Billy) {
	t.Helper()
	mem := fsys.NewMemory()
	for name, content := range files {
		require.NoError(t, util.WriteFile(mem.Raw(), name, []byte(content), 0o644))
	}
	hook := pack.NewHook(cfg, pack.WithFS(func(string) fsys.FS { return mem }))
	return hook, mem
}

func TestDecodeContext(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        pack.Context
		errContains string
	}{
		{
			name: "full_context",
			input: `{
				"appDir": "/out/linux-unpacked/resources/app",
				"appOutDir": "/out/linux-unpacked",
				"electronPlatformName": "linux",
				"arch": "x64",
				"packager": {"name": "ignored"}
			}`,
			want: pack.Context{
				AppDir:   "/out/linux-unpacked/resources/app",
				OutDir:   "/out/linux-unpacked",
				Platform: "linux",
				Arch:     "x64",
			},
		},
		{
			name:        "missing_app_dir",
			input:       `{"appOutDir": "/out"}`,
			errContains: "no appDir",
		},
		{
			name:        "invalid_json",
			input:       `{"appDir":`,
			errContains: "decoding pack context",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pack.DecodeContext(strings.NewReader(tt.input))
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAfterPack(t *testing.T) {
	hook, mem := memHook(t, nil, map[string]string{
		"css/app.css":   "@font-face{src:url(app:///fonts/Inter.woff2)}",
		"css/plain.css": "body{margin:0}",
		"index.html":    "<link href=app:///fonts/x.css>",
	})

	done, err := hook.AfterPack(newTestContext(t), pack.Context{AppDir: "/app"})
	require.NoError(t, err)
	assert.True(t, done)

	data, err := mem.ReadFile("css/app.css")
	require.NoError(t, err)
	assert.Equal(t, "@font-face{src:url(app://./fonts/Inter.woff2)}", string(data))

	data, err = mem.ReadFile("index.html")
	require.NoError(t, err)
	assert.Equal(t, "<link href=app:///fonts/x.css>", string(data), "only the css subdirectory is touched")
}

func TestAfterPackMissingCSSDir(t *testing.T) {
	hook, _ := memHook(t, nil, map[string]string{
		"index.html": "<html></html>",
	})

	done, err := hook.AfterPack(newTestContext(t), pack.Context{AppDir: "/app"})
	require.Error(t, err)
	assert.False(t, done)

	var dirErr *operation.DirectoryAccessError
	require.True(t, errors.As(err, &dirErr))
	assert.Equal(t, "css", dirErr.Dir)
}

func TestAfterPackRequiresAppDir(t *testing.T) {
	hook, _ := memHook(t, nil, nil)

	done, err := hook.AfterPack(newTestContext(t), pack.Context{})
	require.Error(t, err)
	assert.False(t, done)
	assert.Contains(t, err.Error(), "app dir is required")
}

func TestAfterPackConfiguredDirs(t *testing.T) {
	cfg := config.Default()
	cfg.Dirs = []string{"css", "vendor/css"}
	require.NoError(t, cfg.Validate())

	hook, mem := memHook(t, cfg, map[string]string{
		"css/app.css":        "url(app:///fonts/a)",
		"vendor/css/lib.css": "url(app:///fonts/b)",
	})

	assert.Equal(t, []string{
		filepath.Join("/app", "css"),
		filepath.Join("/app", "vendor/css"),
	}, hook.Targets("/app"))

	done, err := hook.AfterPack(newTestContext(t), pack.Context{AppDir: "/app"})
	require.NoError(t, err)
	assert.True(t, done)

	for _, name := range []string{"css/app.css", "vendor/css/lib.css"} {
		data, err := mem.ReadFile(name)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "app:///fonts", name)
	}
}

func TestAfterPackSecondRunIsNoop(t *testing.T) {
	hook, mem := memHook(t, nil, map[string]string{
		"css/app.css": "url(app:///fonts/a)",
	})

	ctx := newTestContext(t)
	for i := 0; i < 2; i++ {
		done, err := hook.AfterPack(ctx, pack.Context{AppDir: "/app"})
		require.NoError(t, err)
		assert.True(t, done)
	}

	data, err := mem.ReadFile("css/app.css")
	require.NoError(t, err)
	assert.Equal(t, "url(app://./fonts/a)", string(data))
}

func TestAfterPackOnDisk(t *testing.T) {
	appDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(appDir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "css", "app.css"), []byte("src: url(app:///fonts/a.ttf);"), 0o600))

	done, err := pack.NewHook(nil).AfterPack(newTestContext(t), pack.Context{AppDir: appDir})
	require.NoError(t, err)
	assert.True(t, done)

	data, err := os.ReadFile(filepath.Join(appDir, "css", "app.css"))
	require.NoError(t, err)
	assert.Equal(t, "src: url(app://./fonts/a.ttf);", string(data))

	info, err := os.Stat(filepath.Join(appDir, "css", "app.css"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
