//go:build unix

package launch

import (
	"os/exec"
	"syscall"

	"github.com/temirov/ilnav/internal/argv"
)

// ProcessStarter starts the viewer in its own session without waiting for it.
type ProcessStarter struct{}

// Start splits the encoded command line back into arguments and spawns the viewer.
func (ProcessStarter) Start(executable string, commandLine string) error {
	// #nosec G204
	command := exec.Command(executable, argv.Split(commandLine)...)
	command.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if startError := command.Start(); startError != nil {
		return startError
	}
	return command.Process.Release()
}
