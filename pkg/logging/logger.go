package logging

import (
	"github.com/phuslu/log"
)

// CreateDebugLogger returns a console logger at debug level, used by
// storage components for page-level tracing.
func CreateDebugLogger() *log.Logger {
	return CreateLogger(log.DebugLevel)
}

// CreateLogger returns a console logger at the given level.
func CreateLogger(level log.Level) *log.Logger {
	return &log.Logger{
		Level:  level,
		Caller: 0,
		Writer: &log.ConsoleWriter{
			ColorOutput:    false,
			EndWithMessage: true,
		},
	}
}
