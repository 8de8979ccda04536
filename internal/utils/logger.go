package utils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultLogLevel       = zapcore.InfoLevel
	invalidLogLevelFormat = "invalid log level %q: %w"
	consoleEncoding       = "console"
	messageKey            = "message"
	levelKey              = "level"
	loggerNameKey         = ""
)

// NewApplicationLogger constructs a zap logger for human-readable console output on stderr.
// An empty levelName selects info; ILNAV_LOG_LEVEL usually supplies it.
func NewApplicationLogger(levelName string) (*zap.Logger, error) {
	level, levelError := parseLogLevel(levelName)
	if levelError != nil {
		return nil, levelError
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.Encoding = consoleEncoding
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.LevelKey = levelKey
	config.EncoderConfig.NameKey = loggerNameKey
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = messageKey
	config.EncoderConfig.StacktraceKey = ""
	return config.Build()
}

func parseLogLevel(levelName string) (zapcore.Level, error) {
	trimmed := strings.TrimSpace(levelName)
	if trimmed == "" {
		return defaultLogLevel, nil
	}
	level, parseError := zapcore.ParseLevel(trimmed)
	if parseError != nil {
		return defaultLogLevel, fmt.Errorf(invalidLogLevelFormat, levelName, parseError)
	}
	return level, nil
}
