//go:build !windows

package process

import (
	"os/exec"
	"syscall"
	"testing"
)

func TestIsolate_SetsProcessGroup(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("latexmk", "-version")
	Isolate(cmd)
	if cmd.SysProcAttr == nil || !cmd.SysProcAttr.Setpgid {
		t.Fatal("Isolate() did not request a new process group")
	}

	// Existing attributes are kept.
	cmd = exec.Command("latexmk")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: false, Noctty: true}
	Isolate(cmd)
	if !cmd.SysProcAttr.Noctty || !cmd.SysProcAttr.Setpgid {
		t.Errorf("Isolate() attrs = %+v", cmd.SysProcAttr)
	}
}
