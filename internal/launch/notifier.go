package launch

import "go.uber.org/zap"

// LoggerNotifier surfaces user-facing messages through a zap logger.
type LoggerNotifier struct {
	logger *zap.Logger
}

// NewLoggerNotifier constructs a LoggerNotifier.
func NewLoggerNotifier(logger *zap.Logger) *LoggerNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggerNotifier{logger: logger}
}

// Notify writes message as a warning entry tagged with title.
func (notifier *LoggerNotifier) Notify(title string, message string) {
	notifier.logger.Warn(message, zap.String("title", title))
}

var _ Notifier = (*LoggerNotifier)(nil)
