//go:build !unix && !windows

package launch

import (
	"os/exec"

	"github.com/temirov/ilnav/internal/argv"
)

// ProcessStarter starts the viewer without waiting for it.
type ProcessStarter struct{}

// Start splits the encoded command line back into arguments and spawns the viewer.
func (ProcessStarter) Start(executable string, commandLine string) error {
	// #nosec G204
	command := exec.Command(executable, argv.Split(commandLine)...)
	if startError := command.Start(); startError != nil {
		return startError
	}
	return command.Process.Release()
}
