// Package logtrace provides logging utilities for the client.
// It integrates with zerolog for structured logging.
package logtrace

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the global logger with Unix timestamp format.
// Configures zerolog to output to stderr with timestamps. The level defaults
// to warn so interactive use stays quiet; set BILLINGCTL_LOG_LEVEL to lower it.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	level := zerolog.WarnLevel
	if s := os.Getenv("BILLINGCTL_LOG_LEVEL"); s != "" {
		if l, err := zerolog.ParseLevel(s); err == nil {
			level = l
		}
	}
	zerolog.SetGlobalLevel(level)
}
