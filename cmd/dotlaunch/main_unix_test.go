//go:build unix

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScriptAndRecordHistory(t *testing.T) {
	t.Setenv("GREETING", "")
	dir := launcherDir(t, map[string]string{
		".env":   "GREETING=hello\nDEBUG=1\n",
		"app.py": "#!/bin/sh\n[ \"$GREETING\" = hello ] || exit 9\nexit 7\n",
	})

	code, _, _ := execute(t,
		"run", "--dir", dir, "--no-pause", "--interpreter", "none", "--log-level", "SILENT",
		"--set", "history.driver=sqlite")
	assert.Equal(t, 7, code)

	code, stdout, _ := execute(t, "history", "--dir", dir, "--set", "history.driver=sqlite", "-n", "5")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "STATUS")
	assert.Contains(t, stdout, "EXITED")
	assert.Contains(t, stdout, "app.py")

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	id := strings.Fields(lines[1])[0]

	code, stdout, _ = execute(t, "history", "--dir", dir, "--set", "history.driver=sqlite", id)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "ID:")
	assert.Contains(t, stdout, id)
	assert.Regexp(t, `Status:\s+EXITED`, stdout)
	assert.Regexp(t, `Exit code:\s+7\n`, stdout)
	assert.Contains(t, stdout, "GREETING=hello")
}
