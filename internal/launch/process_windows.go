//go:build windows

package launch

import (
	"os/exec"
	"syscall"
)

const detachedProcessFlag = 0x00000008

// ProcessStarter starts the viewer as a detached process without waiting for it.
type ProcessStarter struct{}

// Start hands the encoded command line to CreateProcess verbatim.
func (ProcessStarter) Start(executable string, commandLine string) error {
	// #nosec G204
	command := exec.Command(executable)
	command.SysProcAttr = &syscall.SysProcAttr{
		CmdLine:       Invocation(executable, commandLine),
		CreationFlags: detachedProcessFlag | syscall.CREATE_NEW_PROCESS_GROUP,
	}
	if startError := command.Start(); startError != nil {
		return startError
	}
	return command.Process.Release()
}
