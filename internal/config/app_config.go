// Package config loads ilnav configuration from global and local files and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/temirov/ilnav/internal/registry"
	"github.com/temirov/ilnav/internal/utils"
)

const (
	defaultViewerExecutableName = "ILSpy.exe"
	windowsDirectoryVariable    = "WINDIR"
	windowsOperatingSystem      = "windows"
	viewerPathKey               = "viewer.path"
	viewerDryRunKey             = "viewer.dry_run"
	viewerCopyKey               = "viewer.copy"
	registryRootsKey            = "registry.roots"
	registryArchitecturesKey    = "registry.architectures"
	environmentKeySeparator     = "_"
	configurationKeySeparator   = "."
)

var monoRegistryRoots = []string{"/usr/lib/mono/gac", "/usr/local/lib/mono/gac"}

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds ilnav settings.
type ApplicationConfiguration struct {
	Viewer   ViewerConfiguration   `mapstructure:"viewer"`
	Registry RegistryConfiguration `mapstructure:"registry"`
}

// ViewerConfiguration describes the external viewer executable.
type ViewerConfiguration struct {
	Path   string `mapstructure:"path"`
	DryRun *bool  `mapstructure:"dry_run"`
	Copy   *bool  `mapstructure:"copy"`
}

// RegistryConfiguration lists where registered assemblies live.
type RegistryConfiguration struct {
	Roots         []string `mapstructure:"roots"`
	Architectures []string `mapstructure:"architectures"`
}

// LoadApplicationConfiguration loads configuration from the global file, the local file
// and ILNAV_ environment variables, later sources overriding earlier ones.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	merged = merged.Merge(loadConfigurationFromEnvironment())
	merged.Registry.Roots = utils.DeduplicatePatterns(merged.Registry.Roots)
	merged.Registry.Architectures = utils.DeduplicatePatterns(merged.Registry.Architectures)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.LocalConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	// Local files are dot-prefixed, so the type cannot come from the extension alone.
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// loadConfigurationFromEnvironment reads ILNAV_VIEWER_PATH and friends.
// List values use the platform path list separator.
func loadConfigurationFromEnvironment() ApplicationConfiguration {
	reader := viper.New()
	reader.SetEnvPrefix(utils.EnvironmentPrefix)
	reader.SetEnvKeyReplacer(strings.NewReplacer(configurationKeySeparator, environmentKeySeparator))
	for _, key := range []string{viewerPathKey, viewerDryRunKey, viewerCopyKey, registryRootsKey, registryArchitecturesKey} {
		_ = reader.BindEnv(key)
	}

	var config ApplicationConfiguration
	config.Viewer.Path = reader.GetString(viewerPathKey)
	if reader.IsSet(viewerDryRunKey) {
		dryRun := reader.GetBool(viewerDryRunKey)
		config.Viewer.DryRun = &dryRun
	}
	if reader.IsSet(viewerCopyKey) {
		copyEnabled := reader.GetBool(viewerCopyKey)
		config.Viewer.Copy = &copyEnabled
	}
	if roots := reader.GetString(registryRootsKey); roots != "" {
		config.Registry.Roots = filepath.SplitList(roots)
	}
	if architectures := reader.GetString(registryArchitecturesKey); architectures != "" {
		config.Registry.Architectures = filepath.SplitList(architectures)
	}
	return config
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Viewer = result.Viewer.merge(override.Viewer)
	result.Registry = result.Registry.merge(override.Registry)
	return result
}

func (config ViewerConfiguration) merge(override ViewerConfiguration) ViewerConfiguration {
	result := config
	if override.Path != "" {
		result.Path = override.Path
	}
	if override.DryRun != nil {
		result.DryRun = cloneBool(override.DryRun)
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	return result
}

func (config RegistryConfiguration) merge(override RegistryConfiguration) RegistryConfiguration {
	result := config
	if len(override.Roots) > 0 {
		result.Roots = append([]string{}, utils.DeduplicatePatterns(override.Roots)...)
	}
	if len(override.Architectures) > 0 {
		result.Architectures = append([]string{}, utils.DeduplicatePatterns(override.Architectures)...)
	}
	return result
}

// ViewerPath returns the configured viewer or ILSpy.exe beside the ilnav binary.
func (config ApplicationConfiguration) ViewerPath() string {
	if config.Viewer.Path != "" {
		return config.Viewer.Path
	}
	executableDirectory, err := utils.ExecutableDirectory()
	if err != nil {
		return defaultViewerExecutableName
	}
	return filepath.Join(executableDirectory, defaultViewerExecutableName)
}

// RegistryRoots returns the configured roots or the platform defaults.
func (config ApplicationConfiguration) RegistryRoots() []string {
	if len(config.Registry.Roots) > 0 {
		return append([]string{}, config.Registry.Roots...)
	}
	return DefaultRegistryRoots(runtime.GOOS, os.Getenv(windowsDirectoryVariable))
}

// RegistryArchitectures returns the configured architecture side directories or the defaults.
func (config ApplicationConfiguration) RegistryArchitectures() []string {
	if len(config.Registry.Architectures) > 0 {
		return append([]string{}, config.Registry.Architectures...)
	}
	return append([]string{}, registry.DefaultArchitectures...)
}

// DryRun reports whether launches only print their command line.
func (config ApplicationConfiguration) DryRun() bool {
	return config.Viewer.DryRun != nil && *config.Viewer.DryRun
}

// CopyCommandLine reports whether command lines are copied to the clipboard.
func (config ApplicationConfiguration) CopyCommandLine() bool {
	return config.Viewer.Copy != nil && *config.Viewer.Copy
}

// DefaultRegistryRoots returns the assembly registry locations for an operating system.
func DefaultRegistryRoots(operatingSystem string, windowsDirectory string) []string {
	if operatingSystem == windowsOperatingSystem {
		if windowsDirectory == "" {
			windowsDirectory = `C:\Windows`
		}
		return []string{
			filepath.Join(windowsDirectory, "Microsoft.NET", "assembly"),
			filepath.Join(windowsDirectory, "assembly"),
		}
	}
	return append([]string{}, monoRegistryRoots...)
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
