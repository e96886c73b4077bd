package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pdaboat/pkg/adapters/file"
	"github.com/aretw0/pdaboat/pkg/adapters/memory"
	"github.com/aretw0/pdaboat/pkg/adapters/redis"
	"github.com/aretw0/pdaboat/pkg/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pdaboat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSetup_Defaults(t *testing.T) {
	app, err := Setup(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, "anbn", app.Registry.DefaultID())
	assert.Equal(t, domain.ModeMicro, app.Mode())
	assert.True(t, app.Policy.ShouldQuiz(3, 10, "anbn"))
	assert.False(t, app.Policy.ShouldQuiz(2, 10, "anbn"))
}

func TestSetup_FromFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "pdaboat.log")
	path := writeConfig(t, `
default_template: palindrome
mode: batch
quiz_policy: "index == 1"
`)

	app, err := Setup(Options{ConfigPath: path, Debug: true, LogFile: logFile})
	require.NoError(t, err)

	assert.Equal(t, "palindrome", app.Registry.DefaultID())
	assert.Equal(t, domain.ModeBatch, app.Mode())
	assert.True(t, app.Policy.ShouldQuiz(1, 10, "x"))
	assert.True(t, app.Logger.Enabled(context.Background(), slog.LevelDebug))

	res := app.NewSimulator().Simulate(context.Background(), "unknown", "a#a", "")
	assert.Equal(t, "palindrome", res.TemplateID)
	assert.True(t, res.Accepted())

	require.NoError(t, app.Close())
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Verdict"`)
}

func TestSetup_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown default": "default_template: nope\n",
		"bad policy":      "quiz_policy: \"index +\"\n",
		"bad mode":        "mode: turbo\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Setup(Options{ConfigPath: writeConfig(t, content)})
			assert.Error(t, err)
		})
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		app, err := Setup(Options{})
		require.NoError(t, err)
		store, locker, err := app.OpenStore(ctx)
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, store)
		assert.Nil(t, locker)
	})

	t.Run("file", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("PDABOAT_STORE_BACKEND", "file")
		t.Setenv("PDABOAT_STORE_PATH", dir)
		app, err := Setup(Options{})
		require.NoError(t, err)
		store, _, err := app.OpenStore(ctx)
		require.NoError(t, err)
		assert.IsType(t, &file.Store{}, store)

		require.NoError(t, store.Save(ctx, "s1", domain.NewSession("s1", "anbn", "ab", domain.ModeMicro)))
		assert.FileExists(t, filepath.Join(dir, "s1.json"))
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		t.Setenv("PDABOAT_STORE_BACKEND", "redis")
		t.Setenv("PDABOAT_STORE_REDIS_ADDR", mr.Addr())
		app, err := Setup(Options{})
		require.NoError(t, err)
		defer app.Close()

		store, locker, err := app.OpenStore(ctx)
		require.NoError(t, err)
		assert.IsType(t, &redis.Store{}, store)
		assert.NotNil(t, locker)
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		t.Setenv("PDABOAT_STORE_BACKEND", "redis")
		t.Setenv("PDABOAT_STORE_REDIS_ADDR", addr)
		app, err := Setup(Options{})
		require.NoError(t, err)
		_, _, err = app.OpenStore(ctx)
		assert.Error(t, err)
	})
}

func TestDebugHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	hooks := createDebugHooks(logger)
	hooks.OnVerdict(context.Background(), &domain.VerdictEvent{Verdict: domain.VerdictReject, Failure: domain.ErrorRejected})
	assert.Contains(t, buf.String(), "verdict=reject")

	f, err := os.CreateTemp(t.TempDir(), "tty")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsInteractive(f))
}
