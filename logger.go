package htmllite

import (
	"github.com/rs/zerolog"

	"github.com/riverfjs/htmllite-go/internal/logging"
)

// Logger overrides the package logger when non-nil.
var Logger *zerolog.Logger

// SetLogger sets a custom logger for the package.
func SetLogger(logger zerolog.Logger) {
	Logger = &logger
}

func packageLogger() zerolog.Logger {
	if Logger != nil {
		return *Logger
	}
	return logging.GetLogger("htmllite")
}
