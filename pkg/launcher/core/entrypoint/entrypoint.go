// Package entrypoint checks the entry-point file and builds the command that runs it.
package entrypoint

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/config"
	"github.com/tigerroll/dotlaunch/pkg/launcher/core/workdir"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/exception"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

const moduleName = "entrypoint"

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// Check returns the absolute path of file under dir.
// It fails with MissingEntryPoint unless the path exists and is a regular file.
func Check(dir, file string) (string, error) {
	path := workdir.Path(dir, file)
	info, err := os.Stat(path)
	if err != nil {
		return "", exception.NewLaunchErrorf(moduleName, exception.KindMissingEntryPoint, "%s not found", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", exception.NewLaunchErrorf(moduleName, exception.KindMissingEntryPoint, "%s is not a regular file", path)
	}
	return path, nil
}

// Candidates lists the interpreters tried for "auto" on goos.
func Candidates(goos string) []string {
	if goos == "windows" {
		return []string{"python", "py"}
	}
	return []string{"python3", "python"}
}

// Command builds the argv for path.
//
// interpreter "none" runs path directly and "auto" (or empty) picks the first of Candidates
// found on PATH. Any other value is split on whitespace and its first word looked up on PATH.
// Nothing is appended after path.
func Command(path, interpreter string) ([]string, error) {
	switch strings.TrimSpace(interpreter) {
	case config.InterpreterNone:
		return []string{path}, nil
	case "", config.InterpreterAuto:
		candidates := Candidates(runtime.GOOS)
		for _, name := range candidates {
			if resolved, err := lookPath(name); err == nil {
				logger.Debugf("entrypoint: using interpreter %s", resolved)
				return []string{resolved, path}, nil
			}
		}
		return nil, exception.NewLaunchErrorf(moduleName, exception.KindStartFailure,
			"no interpreter found on PATH (tried %s)", strings.Join(candidates, ", "))
	default:
		fields := strings.Fields(interpreter)
		resolved, err := lookPath(fields[0])
		if err != nil {
			return nil, exception.NewLaunchErrorf(moduleName, exception.KindStartFailure, "interpreter %s not found", fields[0], err)
		}
		argv := append([]string{resolved}, fields[1:]...)
		return append(argv, path), nil
	}
}
