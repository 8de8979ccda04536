package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion     = "unknown"
	developmentVersion = "(devel)"
	gitExecutable      = "git"
)

// buildVersion is set at link time with -ldflags "-X github.com/temirov/ilnav/internal/utils.buildVersion=<version>".
var buildVersion string

var gitDescribeArguments = [][]string{
	{"describe", "--tags", "--exact-match"},
	{"describe", "--tags", "--long", "--dirty"},
}

// GetApplicationVersion reports the ilnav version from link flags, module build info,
// or git metadata next to the executable, in that order.
// ilnav usually runs with an editor's project as working directory, so git is never consulted there.
func GetApplicationVersion() string {
	if buildVersion != "" {
		return buildVersion
	}
	if moduleVersion := readModuleVersion(); moduleVersion != "" {
		return moduleVersion
	}
	executableDirectory, executableError := ExecutableDirectory()
	if executableError == nil {
		if describedVersion := describeRepository(executableDirectory); describedVersion != "" {
			return describedVersion
		}
	}
	return unknownVersion
}

func readModuleVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable || buildInfo.Main.Version == developmentVersion {
		return ""
	}
	return buildInfo.Main.Version
}

// describeRepository runs git describe in the repository enclosing startDirectory.
func describeRepository(startDirectory string) string {
	repositoryDirectory, lookupError := findGitDirectory(startDirectory)
	if lookupError != nil {
		return ""
	}
	for _, arguments := range gitDescribeArguments {
		// #nosec G204
		describeCommand := exec.Command(gitExecutable, arguments...)
		describeCommand.Dir = repositoryDirectory
		describeOutput, describeError := describeCommand.Output()
		if describeError == nil && len(describeOutput) > 0 {
			return strings.TrimSpace(string(describeOutput))
		}
	}
	return ""
}

// findGitDirectory returns the closest directory at or above startDirectory holding a .git folder.
func findGitDirectory(startDirectory string) (string, error) {
	absoluteStartDirectory, absoluteError := filepath.Abs(startDirectory)
	if absoluteError != nil {
		return "", fmt.Errorf("failed to get absolute path for %s: %w", startDirectory, absoluteError)
	}
	for currentDirectory := absoluteStartDirectory; ; {
		fileInformation, statError := os.Stat(filepath.Join(currentDirectory, GitDirectoryName))
		if statError == nil && fileInformation.IsDir() {
			return currentDirectory, nil
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			break
		}
		currentDirectory = parentDirectory
	}
	return "", fmt.Errorf(".git directory not found in or above %s", absoluteStartDirectory)
}
