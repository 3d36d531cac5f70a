//go:build windows

package invoke

import "os/exec"

// setupProcessGroup is a no-op on Windows where Setpgid is unavailable.
// Cleanup relies on cmd.Process.Kill() via the default Cancel behavior.
func setupProcessGroup(cmd *exec.Cmd) {
}
