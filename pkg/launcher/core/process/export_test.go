package process

import "os/exec"

// Command exposes command to tests.
func Command(spec Spec, detach bool) (*exec.Cmd, error) {
	return command(spec, detach)
}
