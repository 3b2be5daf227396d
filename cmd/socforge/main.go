package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/tebeka/atexit"
)

func main() {
	// Optional .env with SOCFORGE_* toolchain overrides.
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error().Err(err).Msg("pipeline aborted")
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
