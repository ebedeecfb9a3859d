package config

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures zerolog for text-based output with no coloring.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	})
}

// SetLogLevel sets the global log level for zerolog.
func SetLogLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// SetLogLevelFromString parses a textual level, defaulting to info.
func SetLogLevelFromString(level string) {
	switch level {
	case "debug", "DEBUG":
		SetLogLevel(zerolog.DebugLevel)
	case "warn", "WARN":
		SetLogLevel(zerolog.WarnLevel)
	case "error", "ERROR":
		SetLogLevel(zerolog.ErrorLevel)
	default:
		SetLogLevel(zerolog.InfoLevel)
	}
}
