// Package workdir resolves the launcher directory and makes it current.
package workdir

import (
	"os"
	"path/filepath"

	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/exception"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

const moduleName = "workdir"

// executable is replaced in tests.
var executable = os.Executable

// Resolve returns the absolute launcher directory: override when set, otherwise the
// directory holding the running executable with symlinks resolved.
func Resolve(override string) (string, error) {
	dir := override
	if dir == "" {
		exe, err := executable()
		if err != nil {
			return "", exception.NewLaunchError(moduleName, exception.KindWorkDir, "cannot locate launcher executable", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		} else {
			logger.Warnf("workdir: could not resolve symlinks for %s: %v", exe, err)
		}
		dir = filepath.Dir(exe)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", exception.NewLaunchErrorf(moduleName, exception.KindWorkDir, "invalid launcher directory %s", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", exception.NewLaunchErrorf(moduleName, exception.KindWorkDir, "launcher directory %s is not accessible", abs, err)
	}
	if !info.IsDir() {
		return "", exception.NewLaunchErrorf(moduleName, exception.KindWorkDir, "launcher directory %s is not a directory", abs)
	}
	return abs, nil
}

// Enter resolves the launcher directory and changes into it.
func Enter(override string) (string, error) {
	dir, err := Resolve(override)
	if err != nil {
		return "", err
	}
	if err := os.Chdir(dir); err != nil {
		return "", exception.NewLaunchErrorf(moduleName, exception.KindWorkDir, "cannot change into %s", dir, err)
	}
	logger.Debugf("workdir: now in %s", dir)
	return dir, nil
}

// Path joins name onto dir unless name is already absolute.
func Path(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
