package workdir_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/workdir"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/exception"
)

func evalDir(t *testing.T, dir string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return resolved
}

func TestResolve_FromExecutable(t *testing.T) {
	dir := evalDir(t, t.TempDir())
	exe := filepath.Join(dir, "dotlaunch")
	require.NoError(t, os.WriteFile(exe, []byte("bin"), 0o755))
	defer workdir.SetExecutable(func() (string, error) { return exe, nil })()

	got, err := workdir.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestResolve_FollowsSymlink(t *testing.T) {
	realDir := evalDir(t, t.TempDir())
	exe := filepath.Join(realDir, "dotlaunch")
	require.NoError(t, os.WriteFile(exe, []byte("bin"), 0o755))

	linkDir := t.TempDir()
	link := filepath.Join(linkDir, "dotlaunch")
	if err := os.Symlink(exe, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	defer workdir.SetExecutable(func() (string, error) { return link, nil })()

	got, err := workdir.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, realDir, got)
}

func TestResolve_ExecutableError(t *testing.T) {
	defer workdir.SetExecutable(func() (string, error) { return "", errors.New("no exe") })()

	_, err := workdir.Resolve("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, exception.ErrWorkDir))
}

func TestResolve_OverrideMustBeDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := workdir.Resolve(file)
	assert.True(t, errors.Is(err, exception.ErrWorkDir))

	_, err = workdir.Resolve(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, exception.ErrWorkDir))
}

func TestEnter_ChangesDirectory(t *testing.T) {
	t.Chdir(t.TempDir())
	target := evalDir(t, t.TempDir())

	got, err := workdir.Enter(target)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, target, evalDir(t, cwd))
}

func TestPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "app.py")
	assert.Equal(t, abs, workdir.Path("/srv", abs))
	assert.Equal(t, filepath.Join("/srv", "app.py"), workdir.Path("/srv", "app.py"))
}
