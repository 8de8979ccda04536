package utils

const (
	// ApplicationName is the display name used for dialogs and version output.
	ApplicationName = "ilnav"
	// ConfigFileName is the name of the global configuration file.
	ConfigFileName = "config.yaml"
	// LocalConfigFileName is the name of the per-directory configuration file.
	LocalConfigFileName = ".ilnav.yaml"
	// GlobalConfigDirectoryName is the directory below the home directory holding global configuration.
	GlobalConfigDirectoryName = ".ilnav"
	// EnvironmentPrefix prefixes environment variables overriding configuration.
	EnvironmentPrefix = "ILNAV"
	// LogLevelEnvironmentVariable selects the minimum log level.
	LogLevelEnvironmentVariable = "ILNAV_LOG_LEVEL"
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal command failures.
	ApplicationExecutionFailedMessage = "application execution failed"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
)
