package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/ilnav/internal/registry"
	"github.com/temirov/ilnav/internal/utils"
)

// InitTarget selects which ilnav configuration file `ilnav init` writes.
type InitTarget string

const (
	// InitTargetLocal writes .ilnav.yaml next to the solution being browsed.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes ~/.ilnav/config.yaml, shared by every working directory.
	InitTargetGlobal InitTarget = "global"

	configurationDirectoryPermissions = 0o755
	configurationFilePermissions      = 0o600
	architectureListIndent            = "    - "

	workingDirectoryFailureFormat  = "ilnav init: locate working directory: %w"
	homeDirectoryFailureFormat     = "ilnav init: locate home directory: %w"
	directoryCreationFailureFormat = "ilnav init: create %s: %w"
	unsupportedTargetFormat        = "%w: %q"
	existingConfigurationFormat    = "%w: %s (use --force to replace it)"
	inspectionFailureFormat        = "ilnav init: stat %s: %w"
	writeFailureFormat             = "ilnav init: write %s: %w"

	viewerAndRegistryTemplate = `viewer:
  # Leave empty to use ILSpy.exe next to the ilnav binary.
  path: ""
  dry_run: false
  copy: false
registry:
  # Leave empty to search the platform assembly cache.
  roots: []
  architectures:
%s
`
)

var (
	// ErrConfigurationExists indicates the destination already holds a configuration and Force was not set.
	ErrConfigurationExists = errors.New("ilnav init: configuration already present")
	// ErrUnsupportedInitTarget indicates an InitTarget other than local or global.
	ErrUnsupportedInitTarget = errors.New("ilnav init: unsupported target")
)

// InitOptions controls where `ilnav init` writes and whether it may replace an existing file.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// InitializeConfiguration writes the viewer and registry defaults to the file selected by options
// and returns its path. The architecture list mirrors registry.DefaultArchitectures.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath, destinationError := configurationDestination(options)
	if destinationError != nil {
		return "", destinationError
	}

	_, statError := os.Stat(destinationPath)
	switch {
	case statError == nil && !options.Force:
		return "", fmt.Errorf(existingConfigurationFormat, ErrConfigurationExists, destinationPath)
	case statError != nil && !errors.Is(statError, os.ErrNotExist):
		return "", fmt.Errorf(inspectionFailureFormat, destinationPath, statError)
	}

	if writeError := os.WriteFile(destinationPath, []byte(renderDefaultConfiguration()), configurationFilePermissions); writeError != nil {
		return "", fmt.Errorf(writeFailureFormat, destinationPath, writeError)
	}
	return destinationPath, nil
}

func configurationDestination(options InitOptions) (string, error) {
	switch options.Target {
	case "", InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			currentDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return "", fmt.Errorf(workingDirectoryFailureFormat, workingDirectoryError)
			}
			workingDirectory = currentDirectory
		}
		return filepath.Join(workingDirectory, utils.LocalConfigFileName), nil
	case InitTargetGlobal:
		homeDirectory, homeError := os.UserHomeDir()
		if homeError != nil {
			return "", fmt.Errorf(homeDirectoryFailureFormat, homeError)
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if mkdirError := os.MkdirAll(configurationDirectory, configurationDirectoryPermissions); mkdirError != nil {
			return "", fmt.Errorf(directoryCreationFailureFormat, configurationDirectory, mkdirError)
		}
		return filepath.Join(configurationDirectory, utils.ConfigFileName), nil
	default:
		return "", fmt.Errorf(unsupportedTargetFormat, ErrUnsupportedInitTarget, options.Target)
	}
}

func renderDefaultConfiguration() string {
	architectureLines := make([]string, 0, len(registry.DefaultArchitectures))
	for _, architecture := range registry.DefaultArchitectures {
		architectureLines = append(architectureLines, architectureListIndent+architecture)
	}
	return fmt.Sprintf(viewerAndRegistryTemplate, strings.Join(architectureLines, "\n"))
}
