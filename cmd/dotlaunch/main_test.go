package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/application/usecase"
)

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// launcherDir creates a launcher directory holding files and restores the working directory afterwards.
func launcherDir(t *testing.T, files map[string]string) string {
	t.Helper()
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o755))
	}
	return dir
}

func TestVersion(t *testing.T) {
	code, stdout, _ := execute(t, "version")
	assert.Equal(t, usecase.ExitOK, code)
	assert.Equal(t, "dotlaunch dev\n", stdout)
}

func TestHelp(t *testing.T) {
	code, stdout, _ := execute(t, "help")
	assert.Equal(t, usecase.ExitOK, code)
	assert.Contains(t, stdout, "dotlaunch - load .env and start app.py")
	assert.Contains(t, stdout, "history")
}

func TestUnknownCommand(t *testing.T) {
	code, _, stderr := execute(t, "launch-everything")
	assert.Equal(t, usecase.ExitUsage, code)
	assert.Contains(t, stderr, "unknown command: launch-everything")
}

func TestFlagHelp(t *testing.T) {
	code, _, stderr := execute(t, "-h")
	assert.Equal(t, usecase.ExitOK, code)
	assert.Contains(t, stderr, "-no-pause")
}

func TestInvalidConfigIsAUsageError(t *testing.T) {
	code, _, stderr := execute(t, "run", "--set", "console.pause=sometimes")
	assert.Equal(t, usecase.ExitUsage, code)
	assert.Contains(t, stderr, "console.pause")
}

func TestUnexpectedArgument(t *testing.T) {
	code, _, stderr := execute(t, "env", "extra")
	assert.Equal(t, usecase.ExitUsage, code)
	assert.Contains(t, stderr, `unexpected argument "extra"`)
}

func TestEnvMasksSensitiveValues(t *testing.T) {
	dir := launcherDir(t, map[string]string{
		".env": "API_TOKEN=abc\nPORT=5000\nURL=http://host:5000/path?a=b\nbroken line\n",
	})

	code, stdout, stderr := execute(t, "env", "--dir", dir)

	assert.Equal(t, usecase.ExitOK, code)
	assert.Equal(t, "API_TOKEN=\"******\"\nPORT=5000\nURL=\"http://host:5000/path?a=b\"\n", stdout)
	assert.Contains(t, stderr, "1 line(s) skipped")
}

func TestEnvMissingFile(t *testing.T) {
	dir := launcherDir(t, nil)

	code, _, stderr := execute(t, "env", "--dir", dir, "--env-file", "prod.env")

	assert.Equal(t, usecase.ExitFailure, code)
	assert.Contains(t, stderr, "prod.env")
}

func TestRunMissingEntryPoint(t *testing.T) {
	dir := launcherDir(t, map[string]string{".env": "DEBUG=1\n"})

	code, _, _ := execute(t, "--dir", dir, "--no-pause", "--log-level", "SILENT")

	assert.Equal(t, usecase.ExitFailure, code)
}

func TestHistoryInMemoryIsEmpty(t *testing.T) {
	dir := launcherDir(t, nil)

	code, stdout, _ := execute(t, "history", "--dir", dir)

	assert.Equal(t, usecase.ExitOK, code)
	assert.Equal(t, "No launches recorded (history.driver=memory)\n", stdout)
}

func TestHistoryUnknownID(t *testing.T) {
	dir := launcherDir(t, nil)

	code, _, stderr := execute(t, "history", "--dir", dir, "no-such-launch")

	assert.Equal(t, usecase.ExitFailure, code)
	assert.Contains(t, stderr, "no-such-launch")
}

func TestHistoryRejectsSecondArgument(t *testing.T) {
	code, _, stderr := execute(t, "history", "one", "two")
	assert.Equal(t, usecase.ExitUsage, code)
	assert.Contains(t, stderr, `unexpected argument "two"`)
}
