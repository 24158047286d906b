//go:build !windows

package execx

import "os/exec"

func hideWindow(cmd *exec.Cmd) {}
