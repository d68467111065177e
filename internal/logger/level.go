package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	LevelEnv    = "LOG_LEVEL"
	DebugAllEnv = "SPECTRAL_DEBUG_ALL"
)

// ParseLevel maps debug, info, warn and error to zerolog levels. Anything
// else yields info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// LevelFromEnv reads LOG_LEVEL; SPECTRAL_DEBUG_ALL=true forces debug.
func LevelFromEnv() zerolog.Level {
	return levelFrom(os.Getenv)
}

func levelFrom(getenv func(string) string) zerolog.Level {
	if getenv(DebugAllEnv) == "true" {
		return zerolog.DebugLevel
	}
	return ParseLevel(getenv(LevelEnv))
}
