//go:build windows

package runner

import (
	"errors"
	"os"
	"os/exec"
)

// setProcessGroup is a no-op on Windows
func setProcessGroup(cmd *exec.Cmd) {}

// killProcessTree kills the direct child; Windows has no process groups to signal.
func killProcessTree(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
